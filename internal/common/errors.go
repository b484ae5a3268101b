// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorAccessDenied = errors.New("access to resources denied")

	// Validation errors (malformed or missing input).
	ErrorValidation = errors.New("validation error")

	// Credential errors. NotFound and Incorrect are reported to clients
	// identically; only logs tell them apart.
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrCredentialsNotFound  = errors.New("credentials not found")
	ErrCredentialsIncorrect = errors.New("credentials incorrect")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// IsCredentialsRejected reports whether err is one of the signin failures
// that must look the same to the caller.
func IsCredentialsRejected(err error) bool {
	return errors.Is(err, ErrCredentialsNotFound) || errors.Is(err, ErrCredentialsIncorrect)
}
