package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and the narrow credential updates
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	hasher PasswordHasher
	ids    IDGenerator
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection. Passwords are hashed with hasher before every write;
// identifiers for new accounts come from ids.
func NewUserRepository(db *DB, hasher PasswordHasher, ids IDGenerator, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		hasher: hasher,
		ids:    ids,
		logger: logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads a full users-table row into a [models.User], converting
// the nullable columns (cover image, refresh token).
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var coverImage, refreshToken sql.NullString

	err := row.Scan(
		&user.UserID, &user.UserName, &user.Email, &user.FullName,
		&user.PasswordHash, &user.AvatarURL, &coverImage, &refreshToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if coverImage.Valid {
		user.CoverImageURL = coverImage.String
	}
	if refreshToken.Valid {
		token := refreshToken.String
		user.RefreshToken = &token
	}

	return user, nil
}

// CreateUser hashes the password, assigns a fresh identifier and persists a
// new account record, returning the fully populated [models.User] with
// server-assigned fields (CreatedAt, UpdatedAt).
//
// The INSERT uses the [createUser] prepared query which returns all columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists]. The
//     unique indexes are the authoritative duplicate check; any pre-check
//     performed by the caller only improves error latency.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := r.hasher.Hash(password)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: password hashing failed")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	userID := r.ids.Generate()

	var coverImage *string
	if user.CoverImageURL != "" {
		coverImage = &user.CoverImageURL
	}

	row := r.db.QueryRowContext(ctx, createUser,
		userID, user.UserName, user.Email, user.FullName, passwordHash, user.AvatarURL, coverImage)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: user insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByIdentifier retrieves the account matching the given user name
// (case-insensitive) or e-mail address. Either argument may be empty.
//
// Error handling:
//   - Empty result set → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByIdentifier(ctx context.Context, userName, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByIdentifier, userName, email)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByIdentifier").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// FindUserByID retrieves the account with the given identifier.
//
// Error handling mirrors [userRepository.FindUserByIdentifier].
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	foundUser, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: user lookup failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// UpdateRefreshToken sets or clears the stored refresh token of an account.
//
// This is deliberately a single atomic column write with no read-modify-write
// cycle and no other validation hooks: the password hash is untouched and
// concurrent writers follow last-write-wins semantics.
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateRefreshToken, userID, token)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateRefreshToken").Msg("error: refresh token update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdatePassword hashes newPassword and stores the result on the account.
// The plaintext never reaches the database.
func (r *userRepository) UpdatePassword(ctx context.Context, userID string, newPassword string) error {
	log := logger.FromContext(ctx)

	passwordHash, err := r.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: password hashing failed")
		return fmt.Errorf("error hashing password: %w", err)
	}

	result, err := r.db.ExecContext(ctx, updatePassword, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: password update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateProfileFields applies a partial update of the mutable profile fields
// and returns the updated public projection (no credential columns).
//
// The UPDATE statement is built dynamically with squirrel so only the
// supplied fields appear in the SET clause.
//
// Error handling:
//   - Empty patch → [ErrNoFieldsToUpdate].
//   - E-mail unique violation → [ErrUserAlreadyExists].
//   - Empty result set → [ErrNoUserWasFound].
func (r *userRepository) UpdateProfileFields(ctx context.Context, userID string, patch models.ProfilePatch) (models.PublicUser, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		return models.PublicUser{}, ErrNoFieldsToUpdate
	}

	builder := sq.Update("users").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING user_id, user_name, email, full_name, avatar_url, cover_image_url, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if patch.FullName != nil {
		builder = builder.Set("full_name", *patch.FullName)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.AvatarURL != nil {
		builder = builder.Set("avatar_url", *patch.AvatarURL)
	}
	if patch.CoverImageURL != nil {
		builder = builder.Set("cover_image_url", *patch.CoverImageURL)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfileFields").Msg("error: building update query failed")
		return models.PublicUser{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.PublicUser
	var coverImage sql.NullString

	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&updated.UserID, &updated.UserName, &updated.Email, &updated.FullName,
		&updated.AvatarURL, &coverImage, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PublicUser{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfileFields").Msg("error: profile update failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.PublicUser{}, ErrUserAlreadyExists
		default:
			return models.PublicUser{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if coverImage.Valid {
		updated.CoverImageURL = coverImage.String
	}

	return updated, nil
}
