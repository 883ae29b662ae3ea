package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrBadRequest     = errors.New("bad request")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")

	// Authentication errors. Unknown email and wrong password share one
	// message so callers cannot probe which accounts exist.
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidTwoFactorCode = errors.New("invalid 2FA token")
	ErrTwoFactorRequired    = errors.New("2FA token required")
	ErrTwoFactorNotEnrolled = errors.New("2FA not setup")
	ErrUnauthorized         = errors.New("unauthorized")
)

// ValidationError reports malformed input the caller can correct and resubmit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InfrastructureError wraps account store and other backing-service failures
// so handlers can surface service-unavailable instead of a credential error.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError reports whether err is an InfrastructureError.
func IsInfrastructureError(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
