package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// The access token is read from the accessToken cookie first; non-browser
// clients may instead send it as a bearer token in the "Authorization"
// header. The token is verified via the token service, and — on success —
// the authenticated account's ID (the subject claim) is stored in the
// request context under [utils.UserIDCtxKey] before delegating to the next
// handler.
//
// Requests are rejected with HTTP 401 Unauthorized when no token is
// presented, the header cannot be parsed, or the token fails verification
// (expired, forged, malformed, wrong issuer).
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromRequest(r)
		if err != nil {
			log.Err(err).Msg("request carries no usable access token")
			respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		claims, err := h.services.TokenService.VerifyAccessToken(tokenString)
		if err != nil {
			log.Err(err).Msg("access token failed verification")
			respondError(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		// Store the authenticated account's ID in the context so that
		// downstream handlers can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromRequest extracts the raw access token from the request,
// preferring the accessToken cookie over the "Authorization" header.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrNoTokenProvided] — if neither carrier is present.
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the token part exists but is an empty string.
func getTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoTokenProvided
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
