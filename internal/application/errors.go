package application

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAdminRequired      = errors.New("admin access required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCarNotFound        = errors.New("car not found")
	ErrDealershipNotFound = errors.New("dealership info not found")
	ErrNoValidImages      = errors.New("no valid images were uploaded")
	ErrRequestDenied      = errors.New("request denied by security policy")
	ErrExtractionDisabled = errors.New("ai extraction is not configured")
)

// RateLimitError is returned when the image-search quota is exhausted. It
// carries the remaining quota and reset delay so the transport layer can
// surface them to the caller.
type RateLimitError struct {
	Remaining  int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter)
}
