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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Repository errors
	ErrRepoNotFound ErrorCode = "REPO_NOT_FOUND"
	ErrRepoInvalid  ErrorCode = "REPO_INVALID"

	// Network errors
	ErrFetchFailed ErrorCode = "FETCH_FAILED"
	ErrConnection  ErrorCode = "CONNECTION"

	// Package errors
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrPackageExists   ErrorCode = "PACKAGE_EXISTS"

	// FileSystem errors
	ErrFilesystem ErrorCode = "FILESYSTEM"
)

// LatteError represents a structured error with code and details
type LatteError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LatteError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LatteError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LatteError) Is(target error) bool {
	var targetErr *LatteError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LatteError with the given code and message
func New(code ErrorCode, message string) *LatteError {
	return &LatteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LatteError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LatteError {
	return &LatteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LatteError
func Wrap(err error, code ErrorCode, message string) *LatteError {
	if err == nil {
		return nil
	}
	return &LatteError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LatteError {
	if err == nil {
		return nil
	}
	return &LatteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LatteError) WithDetail(key string, value interface{}) *LatteError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var latteErr *LatteError
	if errors.As(err, &latteErr) {
		return latteErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LatteError
func GetErrorCode(err error) ErrorCode {
	var latteErr *LatteError
	if errors.As(err, &latteErr) {
		return latteErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LatteError
func GetErrorDetails(err error) map[string]interface{} {
	var latteErr *LatteError
	if errors.As(err, &latteErr) {
		return latteErr.Details
	}
	return nil
}
