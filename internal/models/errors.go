// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"fmt"
)

// Error codes form a closed set; callers branch on the code via the Is*
// predicates rather than matching message text.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeForbidden     = "FORBIDDEN"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeValidation    = "VALIDATION_ERROR"
	CodeSelfReference = "SELF_REFERENCE"
	CodeTransient     = "TRANSIENT_STORE_ERROR"
)

// AppError is the application error type carried across the repository and
// service layers.
type AppError struct {
	Code    string
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

// NewNotFoundError reports a referenced entity that is missing or tombstoned.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewConflictError reports a duplicate relationship or concurrent duplicate creation.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewForbiddenError reports a visibility or ownership violation.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewUnauthorizedError reports a request with missing or invalid identity.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewValidationError reports input that violates a content rule.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewSelfReferenceError reports an operation whose actor and target are the
// same profile.
func NewSelfReferenceError(message string) *AppError {
	return &AppError{
		Code:    CodeSelfReference,
		Message: message,
	}
}

// NewTransientError wraps a storage failure that is safe to retry as a whole
// mutation, never partially.
func NewTransientError(err error) *AppError {
	return &AppError{
		Code:    CodeTransient,
		Message: "storage temporarily unavailable",
		Err:     err,
	}
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err is a NOT_FOUND application error.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsConflict reports whether err is a CONFLICT application error.
func IsConflict(err error) bool { return hasCode(err, CodeConflict) }

// IsForbidden reports whether err is a FORBIDDEN application error.
func IsForbidden(err error) bool { return hasCode(err, CodeForbidden) }

// IsValidation reports whether err is a VALIDATION_ERROR application error.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsSelfReference reports whether err is a SELF_REFERENCE application error.
func IsSelfReference(err error) bool { return hasCode(err, CodeSelfReference) }

// IsTransient reports whether err is a retryable storage error.
func IsTransient(err error) bool { return hasCode(err, CodeTransient) }
