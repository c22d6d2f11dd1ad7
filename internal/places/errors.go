package places

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/pkordes/waypoint/internal/domain"
)

var (
	// ErrTimeout is the Kind of an *Error for a request that exceeded its
	// time bound. Retrying the same input may succeed.
	ErrTimeout = errors.New("place search timed out")

	// ErrUpstream is the Kind of an *Error for a failure reported by the
	// provider or the network.
	ErrUpstream = errors.New("place search failed upstream")
)

// Error is a failed call to the provider.
// Status and Code are passed through from the provider's error body when
// it has one.
type Error struct {
	Kind    error
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: %d %s: %s", e.Kind, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%v: %d: %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// StatusOf returns the HTTP status a caller should report for err:
// 400 for validation errors, the Error's own status for provider failures,
// and 500 for anything else.
func StatusOf(err error) int {
	var pe *Error
	switch {
	case errors.As(err, &pe):
		return pe.Status
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the provider's error envelope.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func timeoutError(err error) *Error {
	return &Error{
		Kind:    ErrTimeout,
		Status:  http.StatusRequestTimeout,
		Code:    "TIMEOUT",
		Message: err.Error(),
	}
}

// upstreamError maps a provider error body. When the body could not be
// parsed the status defaults to 500 and the raw body becomes the message.
func upstreamError(body *errorBody, raw string) *Error {
	if body == nil || (body.Error.Message == "" && body.Error.Code == 0) {
		return &Error{
			Kind:    ErrUpstream,
			Status:  http.StatusInternalServerError,
			Message: raw,
		}
	}
	status := body.Error.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{
		Kind:    ErrUpstream,
		Status:  status,
		Code:    body.Error.Status,
		Message: body.Error.Message,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// retryable reports whether a failed attempt is worth repeating:
// timeouts, throttling and provider-side failures.
func retryable(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	if errors.Is(pe.Kind, ErrTimeout) {
		return true
	}
	return pe.Status == http.StatusTooManyRequests || pe.Status >= http.StatusInternalServerError
}
