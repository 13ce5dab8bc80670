package paypulse

import (
	"errors"

	"github.com/paypulse/showcase/core"
)

var (
	// ErrUpstreamUnavailable is returned when the provider cannot be reached,
	// answers with an unexpected status or serves a page without a challenge
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotAuthenticated is returned when protected data is requested before Authenticate
	ErrNotAuthenticated = errors.New("not authenticated, call Authenticate first")

	// ErrInvalidCredentials is returned when the provider rejects the computed response
	ErrInvalidCredentials = core.ErrInvalidCredentials

	// ErrMalformedRequest is returned when the provider reports missing login fields
	ErrMalformedRequest = core.ErrMalformedRequest

	// ErrForbidden is returned when the provider refuses the access token
	ErrForbidden = core.ErrForbidden
)
