package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exposed to callers.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeForbiddenTransition = "FORBIDDEN_TRANSITION"
	CodeInvalidAssignment   = "INVALID_ASSIGNMENT"
	CodeEmptyComment        = "EMPTY_COMMENT"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeNotFound            = "NOT_FOUND"
	CodeInternal            = "INTERNAL"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidation reports malformed input. Details should name the offending field.
func NewValidation(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// NewFieldRequired reports a missing or blank required field.
func NewFieldRequired(field string) error {
	return NewDomainError(CodeValidationFailed, field+" is required", http.StatusBadRequest, map[string]any{"field": field})
}

// NewForbiddenTransition reports a caller whose role lacks the capability.
func NewForbiddenTransition(message string) error {
	return NewDomainError(CodeForbiddenTransition, message, http.StatusForbidden, nil)
}

// NewInvalidAssignment reports a handler/group mismatch.
func NewInvalidAssignment(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidAssignment, message, http.StatusConflict, details)
}

// NewEmptyComment reports a blank comment body.
func NewEmptyComment() error {
	return NewDomainError(CodeEmptyComment, "comment body must not be empty", http.StatusBadRequest, nil)
}

// NewUnauthenticated reports a missing or invalid session.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

// NewNotFound reports a missing resource.
func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewStoreUnavailable wraps a collaborator failure. The message is
// intentionally generic so backend detail never reaches the caller.
func NewStoreUnavailable(err error) error {
	return &DomainError{
		Code:       CodeStoreUnavailable,
		Message:    "ticket store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewInternal reports an unexpected server-side failure.
func NewInternal(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewStoreUnavailable(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeStoreUnavailable,
		Message:    "ticket store unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
