package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting user does not own the referenced resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrUnprocessable indicates a business rule rejected an otherwise valid request.
var ErrUnprocessable = errors.New("request cannot be processed")

// ErrInternal indicates a broken invariant or an infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code along with the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error matching ErrNotFound with extra context.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// DuplicateError reports a unique constraint violation and the constraint that fired.
type DuplicateError struct {
	Constraint string
	Err        error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s (constraint %s): %v", ErrDuplicate.Error(), e.Constraint, e.Err)
}

func (e *DuplicateError) Unwrap() []error {
	return []error{ErrDuplicate, e.Err}
}

// NewDuplicateError builds a DuplicateError for the named constraint.
func NewDuplicateError(constraint string, err error) error {
	return &DuplicateError{Constraint: constraint, Err: err}
}

// IsDuplicateOn reports whether err is a unique violation of the given constraint.
func IsDuplicateOn(err error, constraint string) bool {
	var dupErr *DuplicateError
	return errors.As(err, &dupErr) && dupErr.Constraint == constraint
}
