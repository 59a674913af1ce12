// Package errors provides the coded error taxonomy shared by the form handlers.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Malformed input
	ErrCodeInvalidJSON  ErrorCode = "INVALID_JSON"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"

	// Bot verification rejections
	ErrCodeVerificationFailed ErrorCode = "VERIFICATION_FAILED"

	// Field validation
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server side
	ErrCodeConfiguration          ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// Caller-facing messages. Only Message ever leaves the process; Details stay in the logs.
const (
	MsgInvalidJSON         = "Invalid JSON"
	MsgMissingToken        = "Missing reCAPTCHA token."
	MsgServerConfiguration = "Server configuration error."
	MsgNotificationFailed  = "Could not send notification."
	MsgInternal            = "Internal server error."
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status the error is reported with.
func (e *StandardError) StatusCode() int {
	return HTTPStatus(e.Code)
}

// ==========================
// 2. Constructors
// ==========================

func NewInvalidJSONError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidJSON,
		Message:   MsgInvalidJSON,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewMissingTokenError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingToken,
		Message:   MsgMissingToken,
		Timestamp: time.Now().UTC(),
	}
}

// NewVerificationFailedError carries the verification reason verbatim to the caller.
func NewVerificationFailedError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeVerificationFailed,
		Message:   reason,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationFailedError(message, field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("field: %s", field),
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   MsgServerConfiguration,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(topic string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   MsgNotificationFailed,
		Details:   fmt.Sprintf("topic: %s, error: %s", topic, err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   MsgInternal,
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Mapping
// ==========================

// HTTPStatus maps an error code to the status it is reported with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidJSON,
		ErrCodeMissingToken,
		ErrCodeVerificationFailed,
		ErrCodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the caller can correct the request.
func IsClientError(code ErrorCode) bool {
	return HTTPStatus(code) < http.StatusInternalServerError
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case codeStr == string(ErrCodeInvalidJSON) || codeStr == string(ErrCodeMissingToken):
		return "INPUT"
	case strings.Contains(codeStr, "VERIFICATION"):
		return "VERIFICATION"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
