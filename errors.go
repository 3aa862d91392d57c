package arcanum

import (
	"github.com/arcanum-sdk/client-go/internal/apierrors"
	"github.com/arcanum-sdk/client-go/internal/wire"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrAPI is matched by every remote error, whatever its kind.
	ErrAPI = apierrors.ErrAPI

	// ErrNotFound is matched by *NotFoundError (404).
	ErrNotFound = apierrors.ErrNotFound

	// ErrUnauthorized is matched by *UnauthorizedError (401, 403).
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrValidation is matched by *ValidationError (400, 422).
	ErrValidation = apierrors.ErrValidation

	// ErrRateLimited is matched by *RateLimitError (429).
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrInvalidArgument is matched by every local validation failure. No
	// request is sent when it is returned.
	ErrInvalidArgument = apierrors.ErrInvalidArgument

	// ErrMissingCredentials is returned by New when the API key or secret is empty.
	ErrMissingCredentials = apierrors.ErrMissingCredentials

	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = apierrors.ErrMissingBaseURL

	// ErrDecode is matched when a response does not have the expected shape.
	ErrDecode = wire.ErrDecode
)

// Error is implemented by the five remote error kinds.
type Error = apierrors.Error

// APIError is the catch-all kind. It is returned for unclassified statuses,
// for transport failures and for responses that cannot be decoded; the
// latter two have StatusCode 0.
type APIError = apierrors.APIError

// NotFoundError is returned for 404 responses.
type NotFoundError = apierrors.NotFoundError

// UnauthorizedError is returned for 401 and 403 responses.
type UnauthorizedError = apierrors.UnauthorizedError

// ValidationError is returned for 400 and 422 responses. Fields holds the
// server's per-field messages.
type ValidationError = apierrors.ValidationError

// RateLimitError is returned for 429 responses. RetryAfter, when present, is
// the server's hint in seconds; the client never retries on its own.
type RateLimitError = apierrors.RateLimitError

// InvalidArgumentError reports an argument rejected before any request.
type InvalidArgumentError = apierrors.InvalidArgumentError

// DecodeError reports a missing key or a mistyped value in a response.
type DecodeError = wire.DecodeError

// Kind identifies a remote error kind.
type Kind = apierrors.Kind

// Error kinds.
const (
	KindNone         = apierrors.KindNone
	KindAPI          = apierrors.KindAPI
	KindNotFound     = apierrors.KindNotFound
	KindUnauthorized = apierrors.KindUnauthorized
	KindValidation   = apierrors.KindValidation
	KindRateLimited  = apierrors.KindRateLimited
)

// KindOf returns the kind of the remote error in err's chain, or KindNone.
func KindOf(err error) Kind {
	return apierrors.KindOf(err)
}

// decodeFailed surfaces a decoder failure as a status-0 APIError.
func decodeFailed(err error) error {
	return &APIError{
		Message: "Failed to decode JSON response: " + err.Error(),
		Err:     err,
	}
}
