package serviceerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code categorizes service failures for the gateway layer.
type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeNotFound   Code = "NOT_FOUND"
	CodeConflict   Code = "CONFLICT"
	CodeInternal   Code = "INTERNAL"
)

// Error is the failure type returned by every service operation. Hint
// carries the remaining-capacity message on conflicts where one applies
// (e.g. "you may add 2 only").
type Error struct {
	Code    Code
	Message string
	Hint    string
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// ConflictWithHint attaches a capacity hint to a conflict.
func ConflictWithHint(hint, format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...), Hint: hint}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal error", Hint: err.Error()}
}

// CodeOf extracts the code from a (possibly wrapped) service error,
// defaulting to INTERNAL for anything unclassified.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// HTTPStatus maps a service error to the response status used by the
// gateway handlers.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is what the gateway sends back. Internal details stay
// server-side.
func PublicMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		if se.Code == CodeInternal {
			return "internal error"
		}
		return se.Message
	}
	return "internal error"
}

// HintOf surfaces the capacity hint, empty when the error carries none or
// is internal.
func HintOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Code != CodeInternal {
		return se.Hint
	}
	return ""
}

func IsConflict(err error) bool { return CodeOf(err) == CodeConflict }

func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }
