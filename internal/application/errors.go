package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: resource not found")
	// ErrDuplicate is returned when a uniqueness rule would be violated.
	ErrDuplicate = errors.New("application: resource already exists")
	// ErrInvalidCredentials is returned when login or session validation fails.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrSessionExpired is returned when a session token is past its validity window.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a session token was explicitly revoked.
	ErrSessionRevoked = errors.New("application: session revoked")
)

// InvalidInputError reports a missing or invalid caller-supplied field, or a
// referenced entity that does not exist. The message is surfaced verbatim to
// API clients.
type InvalidInputError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInput(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var iErr *InvalidInputError
	return errors.As(err, &iErr)
}
