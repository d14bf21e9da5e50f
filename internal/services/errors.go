package services

import "errors"

// Credential failures carry the exact message clients see; handlers map all
// of them to an unauthorized response.
var (
	ErrInvalidEmail           = errors.New("Invalid Email Address")
	ErrInvalidPassword        = errors.New("Invalid Password")
	ErrInvalidCurrentPassword = errors.New("Invalid Current Password")
)

// IsCredentialError reports whether err is one of the login/reset
// credential failures.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrInvalidCurrentPassword)
}

// NotFoundError reports a missing document with the message clients see.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a not-found error with a client-facing message.
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// DuplicateError reports a uniqueness violation with the message clients
// see.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// NewDuplicateError creates a duplicate error with a client-facing message.
func NewDuplicateError(message string) *DuplicateError {
	return &DuplicateError{Message: message}
}
