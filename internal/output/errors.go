package output

import (
	"errors"
	"fmt"
)

// Error is a structured error with code, message, and optional hint.
type Error struct {
	Code    string
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	return ExitCodeFor(e.Code)
}

// Error constructors for common cases.

func ErrUsage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

func ErrUsageHint(msg, hint string) *Error {
	return &Error{Code: CodeUsage, Message: msg, Hint: hint}
}

func ErrNoMatch(text string) *Error {
	return &Error{
		Code:    CodeNoMatch,
		Message: fmt.Sprintf("No date period found in %q", text),
		Hint:    `Try an expression like "next two weeks" or "Q2 2016"`,
	}
}

func ErrLocale(raw string, cause error) *Error {
	return &Error{
		Code:    CodeLocale,
		Message: fmt.Sprintf("Locale %q is not available", raw),
		Hint:    "Run: dateperiod locales",
		Cause:   cause,
	}
}

func ErrConfig(cause error) *Error {
	return &Error{
		Code:    CodeConfig,
		Message: "Invalid configuration",
		Hint:    cause.Error(),
		Cause:   cause,
	}
}

// AsError attempts to convert an error to an *Error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeInternal,
		Message: err.Error(),
		Cause:   err,
	}
}
