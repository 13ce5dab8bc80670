package core

import "errors"

var (
	ErrMalformedRequest    = errors.New("missing challenge or response")
	ErrInvalidCredentials  = errors.New("invalid credentials or bot detected")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrForbidden           = errors.New("invalid or expired token")
	ErrCodePointOutOfRange = errors.New("shifted code point is not a valid unicode scalar value")
)
