package domain

import (
	"errors"
	"fmt"
)

// DomainError carries a machine-readable code alongside the human message.
// Handlers translate codes to HTTP statuses; services never touch HTTP.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeConflict    = "CONFLICT"
	ErrCodePersistence = "PERSISTENCE_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// NewValidationError creates a validation error. Validation always precedes
// any write, so these never leave partial state behind.
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewNotFoundError creates a not found error. Soft-deleted rows are
// reported as absent.
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError creates a conflict error (e.g. duplicate representative
// during suggestion promotion).
func NewConflictError(msg string) error {
	return &DomainError{
		Code:    ErrCodeConflict,
		Message: msg,
	}
}

// NewPersistenceError wraps an unexpected storage failure. The underlying
// error is kept for logging but never exposed to the caller.
func NewPersistenceError(err error) error {
	return &DomainError{
		Code:    ErrCodePersistence,
		Message: "A storage error occurred",
		Err:     err,
	}
}

// NewInternalError wraps any other unexpected failure.
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return codeOf(err) == ErrCodeValidation
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return codeOf(err) == ErrCodeNotFound
}

// IsConflict checks if the error is a conflict error
func IsConflict(err error) bool {
	return codeOf(err) == ErrCodeConflict
}

// IsPersistence checks if the error is a persistence error
func IsPersistence(err error) bool {
	return codeOf(err) == ErrCodePersistence
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	if code := codeOf(err); code != "" {
		return code
	}
	return ErrCodeInternal
}

func codeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
