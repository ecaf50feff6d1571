package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration file errors
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigShape ErrorCode = "CONFIG_SHAPE"

	// Property file errors
	ErrPropertyParse ErrorCode = "PROPERTY_PARSE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateSyntax   ErrorCode = "TEMPLATE_SYNTAX"

	// Output errors
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Process launch errors
	ErrLaunch ErrorCode = "LAUNCH"

	// CLI errors
	ErrUsage ErrorCode = "USAGE"
)

// EntrypointError represents a structured error with code and details
type EntrypointError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EntrypointError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EntrypointError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EntrypointError) Is(target error) bool {
	var targetErr *EntrypointError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EntrypointError with the given code and message
func New(code ErrorCode, message string) *EntrypointError {
	return &EntrypointError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EntrypointError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EntrypointError {
	return &EntrypointError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EntrypointError
func Wrap(err error, code ErrorCode, message string) *EntrypointError {
	if err == nil {
		return nil
	}
	return &EntrypointError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EntrypointError {
	if err == nil {
		return nil
	}
	return &EntrypointError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EntrypointError) WithDetail(key string, value interface{}) *EntrypointError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var entrypointErr *EntrypointError
	if errors.As(err, &entrypointErr) {
		return entrypointErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EntrypointError
func GetErrorCode(err error) ErrorCode {
	var entrypointErr *EntrypointError
	if errors.As(err, &entrypointErr) {
		return entrypointErr.Code
	}
	return ErrUnknown
}
