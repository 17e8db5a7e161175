package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/models"
)

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (stubHasher) Verify(plaintext, hash string) (bool, error) {
	return "hashed:"+plaintext == hash, nil
}

type stubIDs struct {
	id string
}

func (s stubIDs) Generate() string {
	return s.id
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		hasher: stubHasher{},
		ids:    stubIDs{id: "uid-1"},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(refreshToken any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.
		NewRows([]string{"user_id", "user_name", "email", "full_name", "password_hash", "avatar_url", "cover_image_url", "refresh_token", "created_at", "updated_at"}).
		AddRow("uid-1", "alice", "alice@example.com", "Alice Liddell", "hashed:Secr3t!", "https://img/avatar.png", nil, refreshToken, now, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserName: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Liddell",
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("uid-1", user.UserName, user.Email, user.FullName, "hashed:Secr3t!", user.AvatarURL, nil).
		WillReturnRows(userRows(nil))

	created, err := repo.CreateUser(ctx, user, "Secr3t!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != "uid-1" {
		t.Errorf("expected UserID=uid-1, got %s", created.UserID)
	}
	if created.PasswordHash == "Secr3t!" {
		t.Error("stored hash must never equal plaintext")
	}
	if created.RefreshToken != nil {
		t.Error("new account must start without a refresh token")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{UserName: "alice"}, "Secr3t!")
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestFindUserByIdentifier_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice", "").
		WillReturnRows(userRows("stored-refresh-token"))

	found, err := repo.FindUserByIdentifier(context.Background(), "alice", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserName != "alice" {
		t.Errorf("expected user name alice, got %s", found.UserName)
	}
	if found.RefreshToken == nil || *found.RefreshToken != "stored-refresh-token" {
		t.Errorf("expected stored refresh token, got %v", found.RefreshToken)
	}
}

func TestFindUserByIdentifier_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody", "").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByIdentifier(context.Background(), "nobody", "")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), "missing-id")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateRefreshToken_Set(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	token := "new-refresh-token"
	mock.ExpectExec("UPDATE users").
		WithArgs("uid-1", token).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), "uid-1", &token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateRefreshToken_Clear(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	// nil token means logout: the column is set to NULL
	mock.ExpectExec("UPDATE users").
		WithArgs("uid-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateRefreshToken(context.Background(), "uid-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateRefreshToken_UserMissing(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("missing-id", nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRefreshToken(context.Background(), "missing-id", nil)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdatePassword_StoresHash(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs("uid-1", "hashed:NewSecr3t!").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "uid-1", "NewSecr3t!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("plaintext must be hashed before the write: %v", err)
	}
}

func TestUpdateProfileFields_EmptyPatch(t *testing.T) {
	repo, _, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.UpdateProfileFields(context.Background(), "uid-1", models.ProfilePatch{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestUpdateProfileFields_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"user_id", "user_name", "email", "full_name", "avatar_url", "cover_image_url", "created_at", "updated_at"}).
		AddRow("uid-1", "alice", "alice@example.com", "Alice Kingsleigh", "https://img/avatar.png", nil, now, now)

	fullName := "Alice Kingsleigh"
	mock.ExpectQuery("UPDATE users SET").
		WithArgs(fullName, "uid-1").
		WillReturnRows(rows)

	updated, err := repo.UpdateProfileFields(context.Background(), "uid-1", models.ProfilePatch{FullName: &fullName})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != fullName {
		t.Errorf("expected updated full name, got %s", updated.FullName)
	}
}

func TestUpdateProfileFields_EmailConflict(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	email := "taken@example.com"
	mock.ExpectQuery("UPDATE users SET").
		WithArgs(email, "uid-1").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateProfileFields(context.Background(), "uid-1", models.ProfilePatch{Email: &email})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}
