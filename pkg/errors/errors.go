// Package errors provides coded errors shared by the converter, the CLI and
// the HTTP service.
//
// Every failure that crosses a package boundary carries a [Code]. Callers
// branch on the code ([Is], [GetCode]) or on its broader [Class] ([ClassOf]);
// the CLI maps classes to exit statuses and the server maps codes to HTTP
// statuses.
//
//	err := errors.Wrap(errors.ErrCodeInvalidDOT, cause, "parse %s", path)
//	if errors.ClassOf(err) == errors.ClassInput {
//	    // the caller sent something unusable
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDOT      Code = "INVALID_DOT"
	ErrCodeInvalidJSON     Code = "INVALID_JSON"
	ErrCodeInvalidEncoding Code = "INVALID_ENCODING"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInputTooLarge   Code = "INPUT_TOO_LARGE"
	ErrCodeUnsupported     Code = "UNSUPPORTED"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeWriteFailed Code = "WRITE_FAILED"
	ErrCodeCacheFailed Code = "CACHE_FAILED"
	ErrCodeTimeout     Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class groups codes by who has to act on the failure.
type Class int

const (
	ClassInternal    Class = iota // a bug or an unexpected failure
	ClassInput                    // the input or the invocation is unusable
	ClassUnavailable              // a file, a backend or time ran out
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:    ClassInput,
	ErrCodeInvalidFormat:   ClassInput,
	ErrCodeInvalidDOT:      ClassInput,
	ErrCodeInvalidJSON:     ClassInput,
	ErrCodeInvalidEncoding: ClassInput,
	ErrCodeInvalidConfig:   ClassInput,
	ErrCodeInputTooLarge:   ClassInput,
	ErrCodeUnsupported:     ClassInput,
	ErrCodeNotFound:        ClassUnavailable,
	ErrCodeFileNotFound:    ClassUnavailable,
	ErrCodeWriteFailed:     ClassUnavailable,
	ErrCodeCacheFailed:     ClassUnavailable,
	ErrCodeTimeout:         ClassUnavailable,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ClassOf returns the class of err's code. Uncoded errors are internal.
func ClassOf(err error) Class {
	return classes[GetCode(err)]
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
