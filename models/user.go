package models

import "time"

// User represents a registered account of the video-sharing platform.
// It contains identity attributes, credential data and denormalized
// media URLs. Sensitive fields must never be exposed outside trusted
// boundaries; use [User.Public] before serializing a user for clients.
type User struct {
	// UserID is the unique identifier of the account, assigned once at
	// registration (UUIDv7) and immutable afterwards.
	UserID string `json:"id"`

	// UserName is the unique handle of the account. It is normalized to
	// lower case before storage so that lookups are case-insensitive.
	UserName string `json:"userName"`

	// Email is the unique e-mail address of the account.
	Email string `json:"email"`

	// FullName is the display name of the user. Non-sensitive, mutable.
	FullName string `json:"fullName"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived value, never plaintext.
	// It is never serialized to JSON.
	PasswordHash string `json:"-"`

	// AvatarURL points to the hosted avatar image. Required at creation.
	AvatarURL string `json:"avatarUrl"`

	// CoverImageURL points to the hosted cover image. Optional.
	CoverImageURL string `json:"coverImageUrl,omitempty"`

	// RefreshToken holds the currently valid refresh token of the account,
	// or nil when the account is logged out. At most one refresh token is
	// valid per account at any time; issuing a new one invalidates the
	// previous. Never serialized to JSON.
	RefreshToken *string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last modification of the record.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the client-facing projection of a [User]. It carries
// everything except the credential fields (password hash, refresh token).
type PublicUser struct {
	UserID        string    `json:"id"`
	UserName      string    `json:"userName"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatarUrl"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public returns the client-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		UserID:        u.UserID,
		UserName:      u.UserName,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ProfilePatch describes a partial update of the mutable profile fields.
// A nil pointer means "leave unchanged". At least one field must be set.
type ProfilePatch struct {
	FullName      *string `json:"fullName,omitempty"`
	Email         *string `json:"email,omitempty"`
	AvatarURL     *string `json:"-"`
	CoverImageURL *string `json:"-"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.FullName == nil && p.Email == nil && p.AvatarURL == nil && p.CoverImageURL == nil
}
