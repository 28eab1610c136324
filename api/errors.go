package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Category tags a failed API call with exactly one failure class so callers
// can branch without digging through raw transport errors.
type Category string

const (
	CategoryNetwork    Category = "NETWORK"
	CategoryAuth       Category = "AUTH"
	CategoryValidation Category = "VALIDATION"
	CategoryNotFound   Category = "NOT_FOUND"
	CategoryServer     Category = "SERVER"
	CategoryUnknown    Category = "UNKNOWN"
)

// Default user-facing messages per category. Network and Server always use
// these; the other categories prefer the message from the response body.
const (
	msgNetwork    = "No connection to the server. Check your network and try again."
	msgTimeout    = "The request timed out. Check your connection and try again."
	msgAuth       = "Session expired. Please sign in again."
	msgValidation = "Invalid data. Review the information and try again."
	msgNotFound   = "Resource not found."
	msgServer     = "Server error. Try again in a few moments."
	msgUnknown    = "Something went wrong. Try again."
)

// Error is a classified API failure. Status is zero when no response was
// received. Message is short and safe to show to the user directly.
type Error struct {
	Category Category
	Message  string
	Status   int
	cause    error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Category, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NewError builds a classified error for failures detected outside the
// transport, such as calling an authenticated operation with no session.
func NewError(category Category, message string, cause error) *Error {
	return &Error{Category: category, Message: message, cause: cause}
}

// errorBody is the error envelope every endpoint uses on failure.
type errorBody struct {
	Message string `json:"message"`
}

// classifyStatus maps a received HTTP status to a classified error.
// serverMsg is the message from the response body, which takes precedence
// over the generic default except for Server failures, where server-provided
// text is not trusted.
func classifyStatus(status int, serverMsg string) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Category: CategoryAuth, Status: status, Message: orDefault(serverMsg, msgAuth)}
	case status == http.StatusBadRequest:
		return &Error{Category: CategoryValidation, Status: status, Message: orDefault(serverMsg, msgValidation)}
	case status == http.StatusNotFound:
		return &Error{Category: CategoryNotFound, Status: status, Message: orDefault(serverMsg, msgNotFound)}
	case status >= 500:
		return &Error{Category: CategoryServer, Status: status, Message: msgServer}
	default:
		return &Error{Category: CategoryUnknown, Status: status, Message: orDefault(serverMsg, msgUnknown)}
	}
}

// classifyTransport maps a failure that produced no response at all.
// Timeouts and cancellations count as network failures; the message never
// echoes raw transport error text.
func classifyTransport(err error) *Error {
	if isTimeout(err) {
		return &Error{Category: CategoryNetwork, Message: msgTimeout, cause: err}
	}
	// http.Client wraps connection failures in *url.Error, which implements
	// net.Error. Anything that reached the wire and failed lands here.
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return &Error{Category: CategoryNetwork, Message: msgNetwork, cause: err}
	}
	return &Error{Category: CategoryUnknown, Message: msgUnknown, cause: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Classify returns the classified form of err. Errors produced by this
// package pass through unchanged; anything else is treated as a
// transport-level failure.
func Classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return classifyTransport(err)
}

// CategoryOf reports the category of err, CategoryUnknown for nil-safe use
// on errors from other layers.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	return Classify(err).Category
}

// IsAuth reports whether err is an authentication failure that requires a
// fresh sign-in.
func IsAuth(err error) bool { return CategoryOf(err) == CategoryAuth }

// IsNetwork reports whether err is a connectivity failure worth retrying
// once the network is back.
func IsNetwork(err error) bool { return CategoryOf(err) == CategoryNetwork }

func orDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
