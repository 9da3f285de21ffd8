package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured error carrying a stable code
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(code, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, keeping the code of an inner AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error, keeping its cause
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any error in the chain carries code
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &AppError{Code: code})
}

// Error codes
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodePrecondition     = "PRECONDITION_FAILED"
	CodeSearchExhausted  = "SEARCH_EXHAUSTED"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Sentinels for errors.Is matching; comparison is by code only.
var (
	ErrInvalidParameter = New(CodeInvalidParameter, "invalid parameter")
	ErrInvalidArgument  = New(CodeInvalidArgument, "invalid argument")
	ErrPrecondition     = New(CodePrecondition, "precondition failed")
	ErrSearchExhausted  = New(CodeSearchExhausted, "search exhausted")
	ErrConfigInvalid    = New(CodeConfigInvalid, "invalid configuration")
)

func InvalidParameter(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidParameter, format, args...)
}

func InvalidArgument(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidArgument, format, args...)
}

func Precondition(message string) *AppError {
	return New(CodePrecondition, message)
}

func SearchExhausted(format string, args ...interface{}) *AppError {
	return Newf(CodeSearchExhausted, format, args...)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   cause,
	}
}
