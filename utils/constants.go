package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the time-to-live for access tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour

	// RefreshTokenTTL is the time-to-live for refresh tokens (7 days)
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Login lockout constants
const (
	// MaxFailedLoginAttempts is the number of failed logins tolerated per email inside LoginLockoutWindow
	MaxFailedLoginAttempts = 5

	// LoginLockoutWindow is how long failed attempts are remembered and how long a locked email stays locked
	LoginLockoutWindow = 15 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Request timeouts
const (
	DefaultRequestTimeout = 30 * time.Second
	ExportRequestTimeout  = 2 * time.Minute
)

type contextKey string

// Request-scoped context keys
const (
	RequestIDKey  contextKey = "request_id"
	UserAgentKey  contextKey = "user_agent"
	IPAddressKey  contextKey = "ip_address"
	EndpointKey   contextKey = "endpoint"
	TimeoutKey    contextKey = "timeout"
	CancelFuncKey contextKey = "cancel_func"
)
