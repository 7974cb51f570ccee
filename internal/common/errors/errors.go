// Package errors provides standardized error handling for the outreach engine.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCredentialInvalid     ErrorCode = "CREDENTIAL_INVALID"
	ErrCodeCredentialCheckFailed ErrorCode = "CREDENTIAL_CHECK_FAILED"

	ErrCodeGuardViolation ErrorCode = "GUARD_VIOLATION"
	ErrCodeRunAborted     ErrorCode = "RUN_ABORTED"

	ErrCodeValidatorFailed       ErrorCode = "VALIDATOR_FAILED"
	ErrCodeDraftGenerationFailed ErrorCode = "DRAFT_GENERATION_FAILED"
	ErrCodeAIResponseInvalid     ErrorCode = "AI_RESPONSE_INVALID"
	ErrCodeAITimeout             ErrorCode = "AI_TIMEOUT"

	ErrCodeDispatchFailed  ErrorCode = "DISPATCH_FAILED"
	ErrCodeScheduleInvalid ErrorCode = "SCHEDULE_INVALID"

	ErrCodeStoreAppendFailed ErrorCode = "STORE_APPEND_FAILED"
	ErrCodeStoreQueryFailed  ErrorCode = "STORE_QUERY_FAILED"
	ErrCodeRecordNotFound    ErrorCode = "RECORD_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewGuardViolationError creates a non-retryable state transition error. The
// message is user-facing; no state transition occurs when it is returned.
func NewGuardViolationError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGuardViolation,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRunAbortedError marks a deliberate cooperative interruption. It is not a
// failure; callers branch on it to distinguish aborted from completed loops.
func NewRunAbortedError(phase string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRunAborted,
		Message:   "Run aborted by operator",
		Details:   fmt.Sprintf("phase: %s", phase),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidatorFailedError creates a retryable validator collaborator error.
func NewValidatorFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidatorFailed,
		Message:   "Lead validation service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDraftGenerationFailedError creates a retryable per-lead generation error.
func NewDraftGenerationFailedError(recipient string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftGenerationFailed,
		Message:   "Draft generation failed",
		Details:   fmt.Sprintf("recipient: %s, error: %s", recipient, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAIResponseInvalidError creates a non-retryable schema mismatch error.
func NewAIResponseInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAIResponseInvalid,
		Message:   "AI response failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDispatchFailedError creates a retryable transport error for one attempt.
func NewDispatchFailedError(recipient string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDispatchFailed,
		Message:   "Email dispatch failed",
		Details:   fmt.Sprintf("recipient: %s, error: %s", recipient, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScheduleInvalidError creates a non-retryable scheduling error.
func NewScheduleInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScheduleInvalid,
		Message:   "Scheduled dispatch time is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreAppendFailedError creates a retryable persistence error.
func NewStoreAppendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreAppendFailed,
		Message:   "Record store append failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreQueryFailedError creates a retryable persistence error.
func NewStoreQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreQueryFailed,
		Message:   "Record store query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable lookup error.
func NewRecordNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialInvalidError creates a non-retryable sender identity error.
func NewCredentialInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialInvalid,
		Message:   "Sender credential rejected",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialCheckFailedError creates a retryable identity verification error.
func NewCredentialCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCredentialCheckFailed,
		Message:   "Sender credential verification error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeValidatorFailed,
		ErrCodeDraftGenerationFailed,
		ErrCodeDispatchFailed,
		ErrCodeStoreAppendFailed,
		ErrCodeStoreQueryFailed,
		ErrCodeCredentialCheckFailed:
		return 3

	case ErrCodeAITimeout:
		return 1

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CREDENTIAL"):
		return "AUTH"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "RECORD"):
		return "STORE"
	case strings.Contains(codeStr, "AI") || strings.Contains(codeStr, "DRAFT") || strings.Contains(codeStr, "VALIDATOR"):
		return "AI"
	case strings.Contains(codeStr, "DISPATCH") || strings.Contains(codeStr, "SCHEDULE"):
		return "DISPATCH"
	case strings.Contains(codeStr, "GUARD") || strings.Contains(codeStr, "ABORT"):
		return "LIFECYCLE"
	default:
		return "OTHER"
	}
}
