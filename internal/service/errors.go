package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	// ErrTokenIsExpiredOrInvalid covers every way a presented token can fail
	// verification: expired, forged, malformed, wrong issuer, or referencing
	// an account that no longer exists. Callers receive a single opaque
	// rejection.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenReuseDetected is returned when a syntactically valid refresh
	// token does not match the one currently stored for the account, that is
	// a token already consumed by rotation or cleared by logout.
	ErrTokenReuseDetected = errors.New("refresh token reuse detected")
)
