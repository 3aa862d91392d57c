// Package api provides the request pipeline for communicating with the
// Arcanum API. It handles authentication, content negotiation, response
// decoding and translation of HTTP failures into the error taxonomy of
// package apierrors.
//
// # Client Creation
//
// [NewClient] takes a [Config]. An API key, an API secret and a base URL are
// required. Every request carries
//
//	Authorization: Bearer {apiKey}:{apiSecret}
//	Accept: application/json
//
// and Content-Type: application/json only when a body is sent with a method
// other than GET or DELETE.
//
// # Error Handling
//
// Responses with status >= 400 are classified by status code:
//
//   - 404: [apierrors.NotFoundError]
//   - 401, 403: [apierrors.UnauthorizedError]
//   - 400, 422: [apierrors.ValidationError], carrying the body's "errors"
//   - 429: [apierrors.RateLimitError], carrying Retry-After in seconds
//   - anything else: [apierrors.APIError]
//
// Transport failures, unreadable bodies and invalid JSON produce an
// [apierrors.APIError] with status 0. Requests are never retried.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. It holds no mutable state.
package api
