package errors

import (
	"errors"
	"strings"
	"unicode"
)

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Remote service errors
	CodeRemoteFailed Code = "remote_failed"
	CodeUnauthorized Code = "unauthorized"
	CodeRateLimited  Code = "rate_limited"
	CodeNotFound     Code = "not_found"

	// Local errors
	CodeValidation         Code = "validation_failed"
	CodeConfigurationError Code = "configuration_error"
)

// ErrClientNotInitialized is reported when a task starts without a remote
// client. It must not occur after a successful startup.
var ErrClientNotInitialized = New(CodeConfigurationError, "GitHub client not initialized.", nil)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// Validation builds a CodeValidation error for input rejected before any
// remote call.
func Validation(msg string) Error {
	return Error{Code: CodeValidation, Message: msg}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Sanitize replaces line breaks, tabs and every other control character with
// a space so a message fits on a single status line and cannot drive the
// terminal.
func Sanitize(msg string) string {
	if strings.IndexFunc(msg, unicode.IsControl) < 0 {
		return msg
	}
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, msg)
}

// Message returns the display text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Sanitize(err.Error())
}
