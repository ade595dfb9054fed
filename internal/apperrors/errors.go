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

// ErrInsufficientBalance indicates that an account balance cannot cover a
// requested withdrawal or transfer.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrOperationNotPending indicates an approve/reject attempt on an operation
// that has already reached a terminal status.
var ErrOperationNotPending = errors.New("operation is not in PENDING status")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller lacks the role required for an action.
var ErrForbidden = errors.New("forbidden")

// AppError carries a status code alongside a wrapped cause. Repositories use
// it for infrastructure failures (begin/commit/rollback, batch execution).
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
