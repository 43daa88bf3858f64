package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies a failed API call.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindNetwork      Kind = "network"
	KindValidation   Kind = "validation"
	KindUnknown      Kind = "unknown"
)

// UnauthorizedMessage is the canonical message for a rejected session.
const UnauthorizedMessage = "Unauthorized - please login again"

// ErrUnauthorized matches (via errors.Is) every Error of KindUnauthorized.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: UnauthorizedMessage}

// sessionMarkers are message fragments the API uses when it rejects a session,
// sometimes with a 2xx status and success=false.
var sessionMarkers = []string{
	"Session expired",
	"unauthorized",
	"UNAUTHORIZED",
	"Please login again",
	UnauthorizedMessage,
}

// Error represents a failed API call: a non-2xx response, an envelope with
// success=false, or a transport failure.
type Error struct {
	Kind       Kind
	StatusCode int // 0 for transport failures
	Message    string
	Err        error // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnauthorized) true for any unauthorized Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == ErrUnauthorized {
		return e.Kind == KindUnauthorized
	}
	return e == t
}

// IsStatus returns true if err (or any wrapped error) is an Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// KindOf classifies err. It returns "" for a nil error and never panics.
// Errors produced by this package carry their Kind; anything else is
// classified by its message so callers get one answer for every error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if isSessionMessage(err.Error()) {
		return KindUnauthorized
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	return KindUnknown
}

// Message returns the user-facing message of err: the server message for an
// Error, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func isSessionMessage(msg string) bool {
	for _, m := range sessionMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// newStatusError builds the Error for a response the server rejected.
func newStatusError(status int, msg string) *Error {
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized || status == 419:
		kind = KindUnauthorized
	case isSessionMessage(msg):
		kind = KindUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity ||
		status == http.StatusConflict || status == http.StatusNotFound || status < 400:
		kind = KindValidation
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Kind: kind, StatusCode: status, Message: msg}
}
