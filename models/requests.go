// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package models

// RegisterRequest carries the parsed registration input handed from the
// transport layer to the session service. The avatar and cover image are
// referenced by the local paths where the transport staged the uploaded
// files; the service exchanges them for hosted URLs before creating the
// account.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`

	// AvatarLocalPath is the staged avatar file. Required.
	AvatarLocalPath string `json:"-"`

	// CoverImageLocalPath is the staged cover image file. Optional; an
	// empty value means no cover image was supplied.
	CoverImageLocalPath string `json:"-"`
}

// LoginRequest identifies an account by user name or e-mail (at least one
// must be present) together with the password to verify.
type LoginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest carries a password rotation request for the
// authenticated account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
