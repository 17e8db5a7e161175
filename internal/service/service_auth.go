package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidtube/accounts/internal/adapter"
	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/store"
	"github.com/vidtube/accounts/models"
)

// authService is the concrete implementation of AuthService.
//
// It owns the single-active-session model: every account stores at most one
// refresh token, login and refresh overwrite it, logout clears it. Password
// hashing lives in the repository; this layer only verifies plaintext against
// stored hashes through the injected hasher.
type authService struct {
	// userRepository is the data-access layer used to create and look up users
	// and to persist the per-account refresh token.
	userRepository store.UserRepository

	// tokenService issues and verifies the access/refresh token pair.
	tokenService TokenService

	// uploader exchanges staged local files for hosted media URLs during
	// registration.
	uploader adapter.MediaUploader

	// hasher compares presented passwords against stored hashes.
	hasher store.PasswordHasher

	// revokeSessionOnPasswordChange clears the stored refresh token after a
	// successful password change, forcing a fresh login everywhere.
	revokeSessionOnPasswordChange bool

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given collaborators
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, tokenService TokenService, uploader adapter.MediaUploader, hasher store.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:                userRepository,
		tokenService:                  tokenService,
		uploader:                      uploader,
		hasher:                        hasher,
		revokeSessionOnPasswordChange: cfg.RevokeSessionOnPasswordChange,
		logger:                        logger,
	}
}

// Register creates a new account.
//
// All four text fields are required after trimming surrounding whitespace,
// and a staged avatar file is mandatory. The user name is lowercased before
// storage so lookups are case-insensitive. The avatar upload must succeed; a
// failed cover image upload is tolerated and leaves the account without one.
//
// Returns the public view of the created account or:
//   - ErrInvalidDataProvided if any required field or the avatar is missing.
//   - store.ErrUserAlreadyExists if the user name or e-mail is taken.
//   - adapter.ErrUploadFailed if the avatar could not be hosted.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	request.FullName = strings.TrimSpace(request.FullName)
	request.Email = strings.TrimSpace(request.Email)
	request.UserName = strings.ToLower(strings.TrimSpace(request.UserName))

	if request.FullName == "" || request.Email == "" || request.UserName == "" || request.Password == "" {
		log.Error().Str("userName", request.UserName).Msg("registration rejected: required field missing")
		return models.PublicUser{}, ErrInvalidDataProvided
	}
	if request.AvatarLocalPath == "" {
		log.Error().Str("userName", request.UserName).Msg("registration rejected: avatar file missing")
		return models.PublicUser{}, ErrInvalidDataProvided
	}

	_, err := a.userRepository.FindUserByIdentifier(ctx, request.UserName, request.Email)
	if err == nil {
		log.Error().Str("userName", request.UserName).Msg("registration rejected: user name or email already taken")
		return models.PublicUser{}, store.ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("userName", request.UserName).Msg("duplicate check failed")
		return models.PublicUser{}, fmt.Errorf("duplicate check failed: %w", err)
	}

	avatarURL, err := a.uploader.Upload(ctx, request.AvatarLocalPath)
	if err != nil {
		log.Err(err).Str("userName", request.UserName).Msg("avatar upload failed")
		return models.PublicUser{}, fmt.Errorf("avatar upload failed: %w", err)
	}

	var coverImageURL string
	if request.CoverImageLocalPath != "" {
		coverImageURL, err = a.uploader.Upload(ctx, request.CoverImageLocalPath)
		if err != nil {
			log.Err(err).Str("userName", request.UserName).Msg("cover image upload failed, registering without one")
			coverImageURL = ""
		}
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		UserName:      request.UserName,
		Email:         request.Email,
		FullName:      request.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}, request.Password)
	if err != nil {
		log.Err(err).Str("userName", request.UserName).Msg("user creation ended with error")
		return models.PublicUser{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("userID", created.UserID).Str("userName", created.UserName).Msg("user registered")
	return created.Public(), nil
}

// Login authenticates an existing account and opens a session.
//
// The account may be identified by user name or e-mail; at least one must be
// present. The password, empty included, always goes through credential
// verification, so a missing password answers as a wrong one rather than a
// validation failure. On success a fresh access/refresh pair is issued and
// the refresh token replaces whatever the account stored before,
// invalidating any previously open session.
//
// Returns the public user view and the token pair or:
//   - ErrInvalidDataProvided if no identifier was supplied.
//   - store.ErrNoUserWasFound if no matching account exists.
//   - ErrWrongPassword if the password does not verify.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.PublicUser, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	request.UserName = strings.ToLower(strings.TrimSpace(request.UserName))
	request.Email = strings.TrimSpace(request.Email)

	if request.UserName == "" && request.Email == "" {
		log.Error().Msg("login rejected: no identifier provided")
		return models.PublicUser{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByIdentifier(ctx, request.UserName, request.Email)
	if err != nil {
		log.Err(err).Str("userName", request.UserName).Msg("user search by identifier failed")
		return models.PublicUser{}, models.TokenPair{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	ok, err := a.hasher.Verify(request.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("userID", foundUser.UserID).Msg("stored credential could not be verified")
		return models.PublicUser{}, models.TokenPair{}, fmt.Errorf("stored credential could not be verified: %w", err)
	}
	if !ok {
		log.Error().Str("userID", foundUser.UserID).Msg("wrong password")
		return models.PublicUser{}, models.TokenPair{}, ErrWrongPassword
	}

	pair, err := a.openSession(ctx, foundUser)
	if err != nil {
		return models.PublicUser{}, models.TokenPair{}, err
	}

	log.Info().Str("userID", foundUser.UserID).Msg("user logged in")
	return foundUser.Public(), pair, nil
}

// Logout closes the account's session by clearing the stored refresh token.
// Logging out an account whose token is already cleared succeeds; the
// operation is idempotent.
func (a *authService) Logout(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.UpdateRefreshToken(ctx, userID, nil); err != nil {
		log.Err(err).Str("userID", userID).Msg("clearing refresh token failed")
		return fmt.Errorf("clearing refresh token failed: %w", err)
	}

	log.Info().Str("userID", userID).Msg("user logged out")
	return nil
}

// Refresh exchanges a valid refresh token for a fresh access/refresh pair.
//
// The presented token must verify against the refresh secret AND exactly
// match the token currently stored for the account it names. A verified
// token that does not match the stored one is treated as replay of an
// already-rotated credential. On success the new refresh token replaces the
// stored one, so the presented token cannot be used again.
//
// Returns the new pair or:
//   - ErrTokenIsExpiredOrInvalid if the token is absent, fails verification,
//     or names an account that no longer exists.
//   - ErrTokenReuseDetected if the token was already rotated or revoked.
func (a *authService) Refresh(ctx context.Context, presentedToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if presentedToken == "" {
		log.Error().Msg("refresh rejected: no token presented")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	claims, err := a.tokenService.VerifyRefreshToken(presentedToken)
	if err != nil {
		log.Err(err).Msg("refresh token failed verification")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("userID", claims.Subject).Msg("refresh token names a missing account")
			return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Str("userID", claims.Subject).Msg("user search by ID failed")
		return models.TokenPair{}, fmt.Errorf("user search by ID failed: %w", err)
	}

	if foundUser.RefreshToken == nil || *foundUser.RefreshToken != presentedToken {
		log.Error().Str("userID", foundUser.UserID).Msg("refresh token reuse detected")
		return models.TokenPair{}, ErrTokenReuseDetected
	}

	pair, err := a.openSession(ctx, foundUser)
	if err != nil {
		return models.TokenPair{}, err
	}

	log.Info().Str("userID", foundUser.UserID).Msg("session refreshed")
	return pair, nil
}

// ChangePassword replaces the account's password after verifying the current
// one. The stored hash is only touched when the current password verifies.
// When session revocation on password change is enabled, the stored refresh
// token is cleared as well.
//
// Returns nil on success or:
//   - ErrInvalidDataProvided if either password is empty.
//   - store.ErrNoUserWasFound if the account does not exist.
//   - ErrWrongPassword if the current password does not verify.
func (a *authService) ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if request.CurrentPassword == "" || request.NewPassword == "" {
		log.Error().Str("userID", userID).Msg("password change rejected: password missing")
		return ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user search by ID failed")
		return fmt.Errorf("user search by ID failed: %w", err)
	}

	ok, err := a.hasher.Verify(request.CurrentPassword, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("stored credential could not be verified")
		return fmt.Errorf("stored credential could not be verified: %w", err)
	}
	if !ok {
		log.Error().Str("userID", userID).Msg("wrong current password")
		return ErrWrongPassword
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, request.NewPassword); err != nil {
		log.Err(err).Str("userID", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	if a.revokeSessionOnPasswordChange {
		if err := a.userRepository.UpdateRefreshToken(ctx, userID, nil); err != nil {
			log.Err(err).Str("userID", userID).Msg("session revocation after password change failed")
			return fmt.Errorf("session revocation after password change failed: %w", err)
		}
	}

	log.Info().Str("userID", userID).Msg("password changed")
	return nil
}

// CurrentUser returns the public view of the authenticated account.
func (a *authService) CurrentUser(ctx context.Context, userID string) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user search by ID failed")
		return models.PublicUser{}, fmt.Errorf("user search by ID failed: %w", err)
	}

	return foundUser.Public(), nil
}

// openSession issues a fresh token pair for user and persists the refresh
// token, replacing any previously stored one. Concurrent callers race on the
// stored token; the last write wins and the earlier token stops refreshing.
func (a *authService) openSession(ctx context.Context, user models.User) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	accessToken, err := a.tokenService.IssueAccessToken(user)
	if err != nil {
		log.Err(err).Str("userID", user.UserID).Msg("access token issue failed")
		return models.TokenPair{}, fmt.Errorf("access token issue failed: %w", err)
	}

	refreshToken, err := a.tokenService.IssueRefreshToken(user.UserID)
	if err != nil {
		log.Err(err).Str("userID", user.UserID).Msg("refresh token issue failed")
		return models.TokenPair{}, fmt.Errorf("refresh token issue failed: %w", err)
	}

	if err := a.userRepository.UpdateRefreshToken(ctx, user.UserID, &refreshToken); err != nil {
		log.Err(err).Str("userID", user.UserID).Msg("storing refresh token failed")
		return models.TokenPair{}, fmt.Errorf("storing refresh token failed: %w", err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
