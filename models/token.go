package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the claim set carried by short-lived access tokens.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp,
// iat, iss) and adds denormalized display fields so that consumers can
// render the current user without an extra lookup.
type AccessClaims struct {
	jwt.RegisteredClaims

	// UserName is the unique handle of the token owner.
	UserName string `json:"userName"`

	// Email is the e-mail address of the token owner.
	Email string `json:"email"`

	// FullName is the display name of the token owner.
	FullName string `json:"fullName"`
}

// RefreshClaims is the claim set carried by long-lived refresh tokens.
// Refresh tokens carry only the account identity (subject claim) and a
// unique token ID (jti); all display data is resolved at exchange time.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenPair bundles a freshly issued access/refresh token pair.
// Both values are compact JWS strings ready for cookie or body delivery.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
