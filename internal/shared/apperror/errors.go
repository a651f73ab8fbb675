// Package apperror defines the structured error type shared across features
// and the mapping from error kinds to user-facing messages.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error classification tag.
type Kind string

// Error kinds.
const (
	KindEmptyPayload       Kind = "EMPTY_PAYLOAD"
	KindPayloadTooLarge    Kind = "PAYLOAD_TOO_LARGE"
	KindInvalidMediaType   Kind = "INVALID_MEDIA_TYPE"
	KindInvalidRequest     Kind = "INVALID_REQUEST"
	KindUnavailable        Kind = "SERVICE_UNAVAILABLE"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindRateLimited        Kind = "RATE_LIMITED"
	KindTimeout            Kind = "TIMEOUT"
	KindNetwork            Kind = "NETWORK"
	KindProviderFailure    Kind = "PROVIDER_FAILURE"
	KindProvidersExhausted Kind = "ALL_PROVIDERS_EXHAUSTED"
	KindChartFetchFailure  Kind = "CHART_FETCH_FAILURE"
)

// Error is a structured error carrying a Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap wraps err with a kind and additional context.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether the outermost *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code returned at the HTTP boundary.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindEmptyPayload, KindPayloadTooLarge, KindInvalidMediaType, KindInvalidRequest:
		return http.StatusBadRequest
	case KindChartFetchFailure:
		return http.StatusBadGateway
	case KindProvidersExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
