package musically

import (
	"errors"
	"fmt"
)

// Configuration errors. These are fatal: they surface at construction or on
// the first request and are never retried.
var (
	// ErrMissingSignFunc is returned by New when Config.SignURL is nil.
	ErrMissingSignFunc = errors.New("musically: config requires a SignURL function")

	// ErrMissingSerializer is returned when a request reaches the signing
	// interceptor without a parameter serializer attached. The interceptor
	// cannot reproduce the string being signed without one.
	ErrMissingSerializer = errors.New("musically: request carries no parameter serializer")
)

// SigningError wraps a failure from the external signer. The request was
// never dispatched.
type SigningError struct {
	// URL is the canonical URL that was passed to the signer.
	URL string

	// Err is the signer's error, unchanged.
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("musically: sign request: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// APIError is a structured error payload the remote service embeds in a
// 200-level response. The client never translates these on its own; callers
// obtain one from BaseResponse.Err after inspecting the decoded body.
type APIError struct {
	// Code is the application-level status code from the body.
	Code int

	// Message is the status message, when present.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("musically: remote status %d", e.Code)
	}
	return fmt.Sprintf("musically: remote status %d: %s", e.Code, e.Message)
}
