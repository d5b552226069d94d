// Package errors provides the structured error type shared by the skill
// handler, the dataset loader and the hosting adapters.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Integration errors: the platform routed something this handler does not serve.
	ErrCodeInvalidIntent ErrorCode = "INVALID_INTENT"
	ErrCodeInvalidEvent  ErrorCode = "INVALID_EVENT"

	// Startup errors.
	ErrCodeDatasetLoadFailed    ErrorCode = "DATASET_LOAD_FAILED"
	ErrCodeDatasetRecordInvalid ErrorCode = "DATASET_RECORD_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ToErrorVariables returns a map suitable for job error variables.
func (e *StandardError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    string(e.Code),
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.Metadata {
		vars[k] = v
	}
	return vars
}

// NewInvalidIntentError is returned when the event names an intent the skill
// does not serve. Never retried.
func NewInvalidIntentError(intent string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidIntent,
		Message:   "Invalid intent",
		Details:   fmt.Sprintf("intent: %q", intent),
		Retryable: false,
		Metadata:  map[string]interface{}{"intent": intent},
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewInvalidEventError is returned when the event lacks a required field.
func NewInvalidEventError(details string, cause error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidEvent,
		Message:   "Malformed skill event",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewDatasetLoadFailedError wraps an I/O or decode failure of the dataset.
func NewDatasetLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatasetLoadFailed,
		Message:   "Failed to load dram dataset",
		Details:   fmt.Sprintf("source: %s, error: %v", source, err),
		Retryable: true,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDatasetRecordInvalidError reports a malformed record at the given index.
func NewDatasetRecordInvalidError(index int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatasetRecordInvalid,
		Message:   "Dataset record failed validation",
		Details:   fmt.Sprintf("record %d: %s", index, details),
		Retryable: false,
		Metadata:  map[string]interface{}{"recordIndex": index},
		Timestamp: time.Now().UTC(),
	}
}

// Normalize ensures err is a *StandardError, wrapping unknown errors as
// INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf returns the error code carried by err, or "" when err is nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return Normalize(err).Code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidIntent, ErrCodeInvalidEvent:
		return "INTEGRATION"
	case ErrCodeDatasetLoadFailed, ErrCodeDatasetRecordInvalid:
		return "DATASET"
	default:
		return "TECHNICAL"
	}
}
