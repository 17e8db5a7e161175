package service

import (
	"context"

	"github.com/vidtube/accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService owns the account session lifecycle: registration, credential
// verification and the access/refresh token pair bound to each account.
type AuthService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.PublicUser, error)
	Login(ctx context.Context, request models.LoginRequest) (models.PublicUser, models.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, presentedToken string) (models.TokenPair, error)
	ChangePassword(ctx context.Context, userID string, request models.ChangePasswordRequest) error
	CurrentUser(ctx context.Context, userID string) (models.PublicUser, error)
}

// ProfileService covers mutable profile fields, hosted media replacement and
// the public read views built on top of the account data.
type ProfileService interface {
	UpdateDetails(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID string, localPath string) (models.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID string, localPath string) (models.PublicUser, error)

	ChannelProfile(ctx context.Context, userName string, viewerID string) (models.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error)
	RecordWatch(ctx context.Context, userID string, videoID string) error
}

// TokenService issues and verifies the two JWT families. Access and refresh
// tokens are signed with distinct secrets, so a token of one family never
// verifies as the other.
type TokenService interface {
	IssueAccessToken(user models.User) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(tokenString string) (*models.AccessClaims, error)
	VerifyRefreshToken(tokenString string) (*models.RefreshClaims, error)
}
