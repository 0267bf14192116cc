// Package businessflow contains the core business logic and use cases of the marketing manager
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Access errors
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("role not allowed")
	ErrInvalidToken    = errors.New("invalid or expired token")

	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrLoginLocked        = errors.New("too many failed login attempts")

	// Campaign errors
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInvalidDateRange = errors.New("end date must be after start date")

	// Promo code errors
	ErrPromoCodeNotFound = errors.New("promo code not found")
	ErrPromoCodeExists   = errors.New("promo code already exists")

	// Social media errors
	ErrPostNotFound           = errors.New("post not found")
	ErrPublishedPostImmutable = errors.New("post has already been published")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// MessageOf returns the client-facing message carried by err, or fallback
func MessageOf(err error, fallback string) string {
	var be *BusinessError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrIncorrectPassword)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsLoginLocked(err error) bool {
	return errors.Is(err, ErrLoginLocked)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsInvalidDateRange(err error) bool {
	return errors.Is(err, ErrInvalidDateRange)
}

func IsPromoCodeNotFound(err error) bool {
	return errors.Is(err, ErrPromoCodeNotFound)
}

func IsPromoCodeExists(err error) bool {
	return errors.Is(err, ErrPromoCodeExists)
}

func IsPostNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

func IsPublishedPostImmutable(err error) bool {
	return errors.Is(err, ErrPublishedPostImmutable)
}

// IsNotFound matches every entity-not-found sentinel
func IsNotFound(err error) bool {
	return IsUserNotFound(err) || IsCampaignNotFound(err) || IsPromoCodeNotFound(err) || IsPostNotFound(err)
}

// IsConflict matches state conflicts, reported to clients as 400
func IsConflict(err error) bool {
	return IsEmailAlreadyExists(err) || IsPromoCodeExists(err) || IsPublishedPostImmutable(err)
}
