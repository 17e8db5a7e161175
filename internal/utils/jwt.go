package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vidtube/accounts/models"
)

// Typed token verification failures. ParseAccessToken and ParseRefreshToken
// always normalise library-level errors to one of these sentinels so that
// callers can branch with [errors.Is] instead of inspecting jwt internals.
var (
	// ErrTokenExpired indicates a structurally valid, correctly signed
	// token whose "exp" claim lies in the past.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenBadSignature indicates that the token signature does not
	// verify against the expected secret (including tokens signed with
	// the secret of the other token kind).
	ErrTokenBadSignature = errors.New("token signature is invalid")

	// ErrTokenMalformed indicates a token that could not be decoded or
	// whose claims failed validation (wrong issuer, missing subject,
	// unexpected signing method).
	ErrTokenMalformed = errors.New("token is malformed")
)

// GenerateAccessToken creates a signed HMAC-SHA256 JWT access token for the
// given user.
//
// The token carries the standard claims (iss, sub, iat, exp) plus the
// denormalized display fields of [models.AccessClaims]. The subject is the
// account's UserID. Access tokens are short-lived (minutes scale).
//
// Returns an error if any required parameter is empty or signing fails.
func GenerateAccessToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || user.UserID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserName: user.UserName,
		Email:    user.Email,
		FullName: user.FullName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken creates a signed HMAC-SHA256 JWT refresh token
// carrying only the account identity (subject claim). Refresh tokens are
// long-lived (days scale) and are signed with a secret distinct from the
// access token secret, so possession of one kind does not let a party
// forge the other.
//
// Each token carries a random jti claim. iat/exp have one-second
// resolution, so without it two tokens issued for the same account within
// the same second would be byte-identical and rotation would store an
// unchanged string, keeping the superseded token alive.
func GenerateRefreshToken(issuer, userID string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// ParseAccessToken verifies the signature, expiry and issuer of a raw
// access token and returns its claims.
//
// Failures are normalised to [ErrTokenExpired], [ErrTokenBadSignature] or
// [ErrTokenMalformed].
func ParseAccessToken(tokenString, signKey, issuer string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	if err := parseWithClaims(tokenString, signKey, issuer, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// ParseRefreshToken verifies the signature, expiry and issuer of a raw
// refresh token and returns its claims.
//
// Failures are normalised to [ErrTokenExpired], [ErrTokenBadSignature] or
// [ErrTokenMalformed].
func ParseRefreshToken(tokenString, signKey, issuer string) (*models.RefreshClaims, error) {
	claims := &models.RefreshClaims{}
	if err := parseWithClaims(tokenString, signKey, issuer, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func parseWithClaims(tokenString, signKey, issuer string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return classifyJWTError(err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return ErrTokenMalformed
	}

	return nil
}

// classifyJWTError maps golang-jwt parse errors onto the package-level
// sentinel errors. Order matters: an expired token also fails generic
// validation, so expiry is checked first.
func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	default:
		return ErrTokenMalformed
	}
}
