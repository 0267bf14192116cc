package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginGuard throttles password guessing per account identifier
type LoginGuard interface {
	// Locked reports whether identifier has exhausted its failed attempts
	Locked(ctx context.Context, identifier string) (bool, error)
	// RecordFailure counts a failed attempt and returns the attempts inside the window
	RecordFailure(ctx context.Context, identifier string) (int64, error)
	// Reset forgets failed attempts after a successful login
	Reset(ctx context.Context, identifier string) error
}

// RedisLoginGuard counts failures in a redis key that expires after the window
type RedisLoginGuard struct {
	rc          *redis.Client
	prefix      string
	maxAttempts int64
	window      time.Duration
}

// NewRedisLoginGuard creates a login guard. A nil client disables throttling.
func NewRedisLoginGuard(rc *redis.Client, prefix string, maxAttempts int, window time.Duration) LoginGuard {
	if rc == nil {
		return noopLoginGuard{}
	}
	return &RedisLoginGuard{rc: rc, prefix: prefix, maxAttempts: int64(maxAttempts), window: window}
}

func (g *RedisLoginGuard) key(identifier string) string {
	return fmt.Sprintf("%slogin_failures:%s", g.prefix, identifier)
}

func (g *RedisLoginGuard) Locked(ctx context.Context, identifier string) (bool, error) {
	raw, err := g.rc.Get(ctx, g.key(identifier)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login failures: %w", err)
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse login failures: %w", err)
	}
	return count >= g.maxAttempts, nil
}

func (g *RedisLoginGuard) RecordFailure(ctx context.Context, identifier string) (int64, error) {
	key := g.key(identifier)
	pipe := g.rc.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, g.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record login failure: %w", err)
	}
	return incr.Val(), nil
}

func (g *RedisLoginGuard) Reset(ctx context.Context, identifier string) error {
	if err := g.rc.Del(ctx, g.key(identifier)).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

type noopLoginGuard struct{}

func (noopLoginGuard) Locked(context.Context, string) (bool, error) { return false, nil }

func (noopLoginGuard) RecordFailure(context.Context, string) (int64, error) { return 0, nil }

func (noopLoginGuard) Reset(context.Context, string) error { return nil }
