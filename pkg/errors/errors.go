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

	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"
	ErrConfigExists   ErrorCode = "CONFIG_EXISTS"

	// Watch errors
	ErrWatcherInit        ErrorCode = "WATCHER_INIT"
	ErrNoWatchRoots       ErrorCode = "NO_WATCH_ROOTS"
	ErrBackendUnsupported ErrorCode = "BACKEND_UNSUPPORTED"
	ErrEventOverflow      ErrorCode = "EVENT_OVERFLOW"

	// Rule errors
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Dispatch errors
	ErrLaunchFailed ErrorCode = "LAUNCH_FAILED"
	ErrNotifyFailed ErrorCode = "NOTIFY_FAILED"
)

// ScanwatchError represents a structured error with code and details
type ScanwatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScanwatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScanwatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScanwatchError) Is(target error) bool {
	var targetErr *ScanwatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScanwatchError with the given code and message
func New(code ErrorCode, message string) *ScanwatchError {
	return &ScanwatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScanwatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScanwatchError {
	return &ScanwatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScanwatchError.
// A nil err yields a nil *ScanwatchError; callers returning error must check first.
func Wrap(err error, code ErrorCode, message string) *ScanwatchError {
	if err == nil {
		return nil
	}
	return &ScanwatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScanwatchError {
	if err == nil {
		return nil
	}
	return &ScanwatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScanwatchError) WithDetail(key string, value interface{}) *ScanwatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var swErr *ScanwatchError
	if errors.As(err, &swErr) {
		return swErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScanwatchError
func GetErrorCode(err error) ErrorCode {
	var swErr *ScanwatchError
	if errors.As(err, &swErr) {
		return swErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ScanwatchError
func GetErrorDetails(err error) map[string]interface{} {
	var swErr *ScanwatchError
	if errors.As(err, &swErr) {
		return swErr.Details
	}
	return nil
}
