package btcsign

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of failures reported by the signing core.
type ErrorCode int

const (
	ErrorCodeOK ErrorCode = iota
	ErrorCodeInvalidKey
	ErrorCodeInvalidScript
	ErrorCodeUnsupportedVariant
	ErrorCodeMissingField
	ErrorCodeInsufficientFunds
	ErrorCodeSignatureCountMismatch
	ErrorCodeSigningFailure
	ErrorCodeSerializationFailure
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeOK:
		return "OK"
	case ErrorCodeInvalidKey:
		return "Invalid Key"
	case ErrorCodeInvalidScript:
		return "Invalid Script"
	case ErrorCodeUnsupportedVariant:
		return "Unsupported Variant"
	case ErrorCodeMissingField:
		return "Missing Field"
	case ErrorCodeInsufficientFunds:
		return "Insufficient Funds"
	case ErrorCodeSignatureCountMismatch:
		return "Signature Count Mismatch"
	case ErrorCodeSigningFailure:
		return "Signing Failure"
	case ErrorCodeSerializationFailure:
		return "Serialization Failure"
	default:
		return "Unknown Error Code"
	}
}

// Error is a failure tagged with its ErrorCode. The wrapped error carries
// the detail.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s : %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsErrorCode reports whether err, or any error it wraps, is an *Error with
// the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf returns the ErrorCode carried by err. Errors that were not produced
// by this package map to ErrorCodeSigningFailure.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrorCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrorCodeSigningFailure
}

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}
