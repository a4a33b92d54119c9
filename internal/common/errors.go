// Package common defines shared constants and sentinel errors used across
// client and server layers of TaskFlow. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthenticated    = errors.New("not authenticated")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorValidation         = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is a well-formed token past its exp claim.
	// It matches ErrInvalidToken as well.
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrInvalidToken)
)
