// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error from
// errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.AccessTokenSecret == "" || cfg.App.RefreshTokenSecret == "" {
		return ErrInvalidAppConfigs
	}

	// distinct secrets: possession of one token kind must not allow
	// forging the other
	if cfg.App.AccessTokenSecret == cfg.App.RefreshTokenSecret {
		return ErrInvalidAppConfigs
	}

	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 ||
		cfg.App.AccessTokenDuration >= cfg.App.RefreshTokenDuration {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Media.UploadURL == "" {
		return ErrInvalidMediaConfigs
	}

	return nil
}
