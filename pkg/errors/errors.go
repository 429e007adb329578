package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error with HTTP awareness. Reason carries the
// specific validation rule that failed so clients can branch on it without
// parsing messages.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Error taxonomy shared by the manual validator, the generator and bulk import.
var (
	ErrValidation     = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConflict       = New("CONFLICT_ERROR", http.StatusConflict, "conflict")
	ErrAvailability   = New("AVAILABILITY_ERROR", http.StatusConflict, "teacher not available")
	ErrPolicy         = New("POLICY_ERROR", http.StatusUnprocessableEntity, "policy violation")
	ErrNotFound       = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrPartialFailure = New("PARTIAL_FAILURE", http.StatusMultiStatus, "completed with failures")
	ErrUnauthorized   = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInternal       = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// ErrCacheMiss signals a cache lookup found no entry. Callers fall back to
// the database and repopulate.
var ErrCacheMiss = errors.New("cache miss")

// Validation rule reasons surfaced by the manual assignment validator.
const (
	ReasonMissingField        = "MISSING_FIELD"
	ReasonGroupScheduled      = "GROUP_ALREADY_SCHEDULED"
	ReasonTeacherUnavailable  = "TEACHER_UNAVAILABLE"
	ReasonResourceConflict    = "RESOURCE_CONFLICT"
	ReasonCycleTimeWindow     = "CYCLE_TIME_WINDOW_VIOLATION"
	ReasonRestrictionViolated = "RESTRICTION_VIOLATED"
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithReason copies the error and tags it with a validation rule reason.
func WithReason(err *Error, reason, message string) *Error {
	clone := Clone(err, message)
	if clone != nil {
		clone.Reason = reason
	}
	return clone
}
