package wxclip

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL    = "internal"    // internal error (I/O, rendering)
	EINVALID     = "invalid"     // validation failed (bad input, bad config)
	ENOTFOUND    = "not_found"   // entity does not exist (no article body)
	EUNAVAILABLE = "unavailable" // upstream unreachable (network, non-2xx)
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract out the code & message.
//
// Any non-application error (such as a disk error) should be reported as
// an EINTERNAL error and the human user should only see "internal error"
// as the message. These low-level errors are not meant for the end user.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("wxclip error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
