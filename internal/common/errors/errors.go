// Package errors provides standardized error handling for the quote engine.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Failure kinds of the quote pipeline. Every one of them degrades to a
// defined fallback or terminal state; none is fatal to the process.
const (
	ErrCodeUpstreamUnavailable        ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedUpstreamResponse  ErrorCode = "MALFORMED_UPSTREAM_RESPONSE"
	ErrCodeInputAmbiguous             ErrorCode = "INPUT_AMBIGUOUS"
	ErrCodeInputUnrecognized          ErrorCode = "INPUT_UNRECOGNIZED"
	ErrCodeConfigurationError         ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeUnknownCatalogClass        ErrorCode = "UNKNOWN_CATALOG_CLASS"
	ErrCodeExternalServiceError       ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeoutError               ErrorCode = "TIMEOUT_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// HasCode reports whether err carries the given error code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code == code
	}
	return false
}

// IsFallbackTrigger reports whether the error should route the caller to its
// local fallback (lexical matcher, safe-default travel tier) instead of
// surfacing as a failure.
func IsFallbackTrigger(err error) bool {
	var std *StandardError
	if !errors.As(err, &std) {
		return false
	}
	switch std.Code {
	case ErrCodeUpstreamUnavailable,
		ErrCodeMalformedUpstreamResponse,
		ErrCodeConfigurationError,
		ErrCodeTimeoutError:
		return true
	}
	return false
}

// NewUpstreamUnavailableError creates an error for an unreachable or failing
// external service. Never surfaced to the caller; triggers the local fallback.
func NewUpstreamUnavailableError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("External service '%s' unavailable", service),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMalformedUpstreamResponseError creates an error for a response outside
// the expected schema. Treated identically to UpstreamUnavailable.
func NewMalformedUpstreamResponseError(service, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedUpstreamResponse,
		Message:   fmt.Sprintf("External service '%s' returned a non-conforming payload", service),
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError creates an error for missing external-service
// credentials. The affected call is skipped in favor of its fallback.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationError,
		Message:   "Missing or invalid external-service configuration",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewTimeoutError creates an error for an external call exceeding its bounded
// timeout. No retry is attempted; the caller falls back immediately.
func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTimeoutError,
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUnknownCatalogClassError reports an item referencing a class the catalog
// does not define. This is a programming/contract error, not user input.
func NewUnknownCatalogClassError(classID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCatalogClass,
		Message:   "Item references an unknown catalog class",
		Details:   fmt.Sprintf("classId: %s", classID),
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError creates a generic external service error.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExternalServiceError,
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "UPSTREAM") || strings.Contains(codeStr, "EXTERNAL") || strings.Contains(codeStr, "TIMEOUT"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "INPUT"):
		return "INPUT"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIG"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	default:
		return "OTHER"
	}
}
