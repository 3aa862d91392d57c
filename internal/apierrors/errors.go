// Package apierrors provides shared error types for the Arcanum client.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrAPI is matched by every remote error kind.
	ErrAPI = errors.New("arcanum API error")

	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned when authentication fails or access is denied (401, 403).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned when the server rejects request data (400, 422).
	ErrValidation = errors.New("validation failed")

	// ErrRateLimited is returned when the API rate limit is exceeded (429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidArgument is returned when a call is rejected locally before
	// any request is made.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingCredentials is returned when the API key or secret is empty.
	ErrMissingCredentials = fmt.Errorf("%w: API key and secret are required", ErrInvalidArgument)

	// ErrMissingBaseURL is returned when no base URL is configured.
	ErrMissingBaseURL = fmt.Errorf("%w: base URL is required", ErrInvalidArgument)
)

// Kind identifies one of the five remote error kinds.
type Kind int

const (
	// KindNone is reported for nil and for errors outside the taxonomy.
	KindNone Kind = iota
	KindAPI
	KindNotFound
	KindUnauthorized
	KindValidation
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate_limited"
	}
	return "none"
}

// Error is implemented by every remote error kind.
type Error interface {
	error
	Kind() Kind
	Status() int
}

// APIError is the generic error kind: unclassified statuses, transport
// failures, undecodable bodies and unexpected faults.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *APIError) Error() string { return format(e.StatusCode, e.Message, e.RequestID) }

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool { return target == ErrAPI }

// Kind returns KindAPI.
func (e *APIError) Kind() Kind { return KindAPI }

// Status returns the HTTP status code, or 0 when no response was received.
func (e *APIError) Status() int { return e.StatusCode }

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *NotFoundError) Error() string { return format(e.StatusCode, e.Message, e.RequestID) }

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound || target == ErrAPI }

// Kind returns KindNotFound.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// Status returns the HTTP status code.
func (e *NotFoundError) Status() int { return e.StatusCode }

// UnauthorizedError is returned for 401 and 403 responses. The two are not
// distinguished by kind; the message carries the server's explanation.
type UnauthorizedError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *UnauthorizedError) Error() string { return format(e.StatusCode, e.Message, e.RequestID) }

// Unwrap returns the underlying error.
func (e *UnauthorizedError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized || target == ErrAPI
}

// Kind returns KindUnauthorized.
func (e *UnauthorizedError) Kind() Kind { return KindUnauthorized }

// Status returns the HTTP status code.
func (e *UnauthorizedError) Status() int { return e.StatusCode }

// ValidationError is returned for 400 and 422 responses.
type ValidationError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
	// Fields maps a request field name to the server's description of what
	// is wrong with it. Never nil.
	Fields map[string]string
}

func (e *ValidationError) Error() string { return format(e.StatusCode, e.Message, e.RequestID) }

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrAPI
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() Kind { return KindValidation }

// Status returns the HTTP status code.
func (e *ValidationError) Status() int { return e.StatusCode }

// RateLimitError is returned for 429 responses.
type RateLimitError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
	// RetryAfter is the Retry-After header in seconds, nil when absent.
	RetryAfter *int
}

func (e *RateLimitError) Error() string { return format(e.StatusCode, e.Message, e.RequestID) }

// Unwrap returns the underlying error.
func (e *RateLimitError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited || target == ErrAPI
}

// Kind returns KindRateLimited.
func (e *RateLimitError) Kind() Kind { return KindRateLimited }

// Status returns the HTTP status code.
func (e *RateLimitError) Status() int { return e.StatusCode }

func format(status int, msg, requestID string) string {
	if msg == "" {
		msg = fmt.Sprintf("API error %d", status)
	}
	if requestID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, requestID)
	}
	return msg
}

// Details is the information gathered from a failed exchange.
type Details struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
	Fields     map[string]string
	RetryAfter *int
}

// Classify maps a status code to its error kind. It is a pure function of
// d.StatusCode; kind-specific payload is attached only to the kind that
// carries it.
func Classify(d Details) error {
	switch d.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{StatusCode: d.StatusCode, Message: d.Message, RequestID: d.RequestID, Err: d.Err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &UnauthorizedError{StatusCode: d.StatusCode, Message: d.Message, RequestID: d.RequestID, Err: d.Err}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		fields := d.Fields
		if fields == nil {
			fields = map[string]string{}
		}
		return &ValidationError{StatusCode: d.StatusCode, Message: d.Message, RequestID: d.RequestID, Err: d.Err, Fields: fields}
	case http.StatusTooManyRequests:
		return &RateLimitError{StatusCode: d.StatusCode, Message: d.Message, RequestID: d.RequestID, Err: d.Err, RetryAfter: d.RetryAfter}
	}
	return &APIError{StatusCode: d.StatusCode, Message: d.Message, RequestID: d.RequestID, Err: d.Err}
}

// KindOf returns the kind of the first taxonomy error in err's chain.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindNone
}

// InvalidArgumentError is returned when an argument fails local validation.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
