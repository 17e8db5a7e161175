package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error)
	loginFn          func(ctx context.Context, request models.LoginRequest) (models.PublicUser, models.TokenPair, error)
	logoutFn         func(ctx context.Context, userID string) error
	refreshFn        func(ctx context.Context, presentedToken string) (models.TokenPair, error)
	changePasswordFn func(ctx context.Context, userID string, request models.ChangePasswordRequest) error
	currentUserFn    func(ctx context.Context, userID string) (models.PublicUser, error)
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error) {
	return m.registerFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.PublicUser, models.TokenPair, error) {
	return m.loginFn(ctx, request)
}

func (m *mockAuthService) Logout(ctx context.Context, userID string) error {
	return m.logoutFn(ctx, userID)
}

func (m *mockAuthService) Refresh(ctx context.Context, presentedToken string) (models.TokenPair, error) {
	return m.refreshFn(ctx, presentedToken)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, request)
}

func (m *mockAuthService) CurrentUser(ctx context.Context, userID string) (models.PublicUser, error) {
	return m.currentUserFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Mock ProfileService
// ─────────────────────────────────────────────

type mockProfileService struct {
	updateDetailsFn    func(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error)
	updateAvatarFn     func(ctx context.Context, userID, localPath string) (models.PublicUser, error)
	updateCoverImageFn func(ctx context.Context, userID, localPath string) (models.PublicUser, error)
	channelProfileFn   func(ctx context.Context, userName, viewerID string) (models.ChannelProfile, error)
	watchHistoryFn     func(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error)
	recordWatchFn      func(ctx context.Context, userID, videoID string) error
}

func (m *mockProfileService) UpdateDetails(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error) {
	return m.updateDetailsFn(ctx, userID, patch)
}

func (m *mockProfileService) UpdateAvatar(ctx context.Context, userID, localPath string) (models.PublicUser, error) {
	return m.updateAvatarFn(ctx, userID, localPath)
}

func (m *mockProfileService) UpdateCoverImage(ctx context.Context, userID, localPath string) (models.PublicUser, error) {
	return m.updateCoverImageFn(ctx, userID, localPath)
}

func (m *mockProfileService) ChannelProfile(ctx context.Context, userName, viewerID string) (models.ChannelProfile, error) {
	return m.channelProfileFn(ctx, userName, viewerID)
}

func (m *mockProfileService) WatchHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error) {
	return m.watchHistoryFn(ctx, userID)
}

func (m *mockProfileService) RecordWatch(ctx context.Context, userID, videoID string) error {
	return m.recordWatchFn(ctx, userID, videoID)
}

// ─────────────────────────────────────────────
// Mock TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	issueAccessFn   func(user models.User) (string, error)
	issueRefreshFn  func(userID string) (string, error)
	verifyAccessFn  func(tokenString string) (*models.AccessClaims, error)
	verifyRefreshFn func(tokenString string) (*models.RefreshClaims, error)
}

func (m *mockTokenService) IssueAccessToken(user models.User) (string, error) {
	return m.issueAccessFn(user)
}

func (m *mockTokenService) IssueRefreshToken(userID string) (string, error) {
	return m.issueRefreshFn(userID)
}

func (m *mockTokenService) VerifyAccessToken(tokenString string) (*models.AccessClaims, error) {
	return m.verifyAccessFn(tokenString)
}

func (m *mockTokenService) VerifyRefreshToken(tokenString string) (*models.RefreshClaims, error) {
	return m.verifyRefreshFn(tokenString)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(t *testing.T, services *service.Services) *Handler {
	t.Helper()
	cfg := config.StructuredConfig{
		Storage: config.Storage{Files: config.Files{TempUploadDir: t.TempDir()}},
	}
	return NewHandler(services, cfg, logger.Nop())
}

// verifierFor returns a token service whose access-token verification
// accepts exactly the given token and resolves it to userID.
func verifierFor(token, userID string) *mockTokenService {
	return &mockTokenService{
		verifyAccessFn: func(tokenString string) (*models.AccessClaims, error) {
			if tokenString != token {
				return nil, service.ErrTokenIsExpiredOrInvalid
			}
			claims := &models.AccessClaims{}
			claims.Subject = userID
			return claims, nil
		},
	}
}

// decodeEnvelope parses the uniform response envelope from a recorder.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var envelope apiResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

// cookieByName finds a Set-Cookie entry in the recorded response.
func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
