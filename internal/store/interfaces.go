package store

import (
	"context"

	"github.com/vidtube/accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: it owns persisted account records
// and is the only component allowed to touch the password hash and the
// stored refresh token.
//
// Password plaintext enters the repository only through CreateUser and
// UpdatePassword, both of which hash it via the injected [PasswordHasher]
// before any write. Hashes never leave the package except as part of a full
// [models.User] handed to the service layer for verification.
type UserRepository interface {
	// CreateUser persists a new account. The user name must already be
	// lower-cased by the caller. Returns [ErrUserAlreadyExists] when either
	// unique index (user name, email) rejects the insert.
	CreateUser(ctx context.Context, user models.User, password string) (models.User, error)

	// FindUserByIdentifier looks an account up by user name
	// (case-insensitive) or e-mail; either argument may be empty, but not
	// both. Returns [ErrNoUserWasFound] on an empty result.
	FindUserByIdentifier(ctx context.Context, userName, email string) (models.User, error)

	// FindUserByID looks an account up by its identifier.
	// Returns [ErrNoUserWasFound] on an empty result.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// UpdateRefreshToken sets (or clears, when token is nil) the account's
	// stored refresh token. This is a narrow single-column write with no
	// other validation side effects.
	UpdateRefreshToken(ctx context.Context, userID string, token *string) error

	// UpdatePassword hashes newPassword and stores the result. Plaintext is
	// never written.
	UpdatePassword(ctx context.Context, userID string, newPassword string) error

	// UpdateProfileFields applies a partial update of the mutable profile
	// fields and returns the updated public projection. Returns
	// [ErrNoFieldsToUpdate] for an empty patch and [ErrUserAlreadyExists]
	// when an e-mail change collides with another account.
	UpdateProfileFields(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error)
}

// ChannelRepository serves the denormalized read views built on top of the
// account data model: channel summaries and watch history.
type ChannelRepository interface {
	// GetChannelProfile returns the channel view of the account with the
	// given user name, with subscription aggregates computed relative to
	// viewerID. Returns [ErrNoUserWasFound] when no such channel exists.
	GetChannelProfile(ctx context.Context, userName, viewerID string) (models.ChannelProfile, error)

	// GetWatchHistory returns the user's watch history, most recent first.
	GetWatchHistory(ctx context.Context, userID string) ([]models.WatchHistoryEntry, error)

	// AppendWatchHistory records that the user watched the given video.
	AppendWatchHistory(ctx context.Context, userID, videoID string) error
}

// PasswordHasher is the one-way transform used by the credential store when
// persisting passwords. Implemented by utils.PasswordHasher.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// IDGenerator produces identifiers for newly created records.
// Implemented by utils.UUIDGenerator.
type IDGenerator interface {
	Generate() string
}
