// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package http

import "errors"

// Sentinel errors used when extracting the access token from an incoming
// request. Callers can match against them with [errors.Is].
var (
	// ErrNoTokenProvided is returned by the auth middleware when neither the
	// access token cookie nor the "Authorization" header carries a token.
	ErrNoTokenProvided = errors.New("no access token provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
