package service

import (
	"time"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/utils"
	"github.com/vidtube/accounts/models"
)

// tokenService is the concrete implementation of TokenService.
//
// It keeps the two signing secrets and the two lifetimes side by side and
// delegates the JWT mechanics to the utils package. Verification is strict:
// the issuer must match, the signing method must be HMAC, and the subject
// claim must be present.
type tokenService struct {
	// accesssecret signs short-lived access tokens.
	accessSecret string

	// refreshSecret signs long-lived refresh tokens. Never equal to
	// accessSecret — config validation rejects matching secrets.
	refreshSecret string

	// issuer is the "iss" claim stamped into every issued token.
	issuer string

	accessDuration  time.Duration
	refreshDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the application security
// parameters. The returned service is stateless and safe for concurrent use.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		accessSecret:    cfg.AccessTokenSecret,
		refreshSecret:   cfg.RefreshTokenSecret,
		issuer:          cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		logger:          logger,
	}
}

// IssueAccessToken signs a short-lived access token embedding the user's
// identity claims (user name, e-mail, full name) alongside the registered
// subject and issuer.
func (t *tokenService) IssueAccessToken(user models.User) (string, error) {
	return utils.GenerateAccessToken(t.issuer, user, t.accessDuration, t.accessSecret)
}

// IssueRefreshToken signs a long-lived refresh token carrying only the
// account ID as its subject.
func (t *tokenService) IssueRefreshToken(userID string) (string, error) {
	return utils.GenerateRefreshToken(t.issuer, userID, t.refreshDuration, t.refreshSecret)
}

// VerifyAccessToken parses and validates an access token.
//
// Returns the embedded claims or one of the utils token sentinels
// (utils.ErrTokenExpired, utils.ErrTokenBadSignature, utils.ErrTokenMalformed).
func (t *tokenService) VerifyAccessToken(tokenString string) (*models.AccessClaims, error) {
	return utils.ParseAccessToken(tokenString, t.accessSecret, t.issuer)
}

// VerifyRefreshToken parses and validates a refresh token.
//
// A refresh token signed with the access secret fails here with
// utils.ErrTokenBadSignature; the two families are not interchangeable.
func (t *tokenService) VerifyRefreshToken(tokenString string) (*models.RefreshClaims, error) {
	return utils.ParseRefreshToken(tokenString, t.refreshSecret, t.issuer)
}
