package utils

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the affiliate ledger. Every kind is reported as
// a 400 response at the HTTP boundary.
const (
	KindValidation = "validation"
	KindDuplicate  = "duplicate"
	KindNotFound   = "not_found"
)

// AppError represents an application error
type AppError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// ValidationError reports invalid input, such as a bad commission value or
// a discount spanning more than one region
func ValidationError(message string) *AppError {
	return NewAppError(KindValidation, message, nil)
}

// DuplicateError reports that an active record already exists
func DuplicateError(message string) *AppError {
	return NewAppError(KindDuplicate, message, nil)
}

// NotFoundError reports a lookup or delete miss
func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message, nil)
}

func kindOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return kindOf(err) == KindValidation
}

// IsDuplicateError checks if an error is a duplicate error
func IsDuplicateError(err error) bool {
	return kindOf(err) == KindDuplicate
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return kindOf(err) == KindNotFound
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
