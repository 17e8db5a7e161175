// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

// Package adapter provides the outbound collaborator clients of the
// accounts service.
//
// The primary abstraction is [MediaUploader], which decouples the service
// layer from the image-hosting provider. The package ships an HTTP
// implementation ([NewHTTPMediaUploader]) that pushes locally staged files
// to the provider's upload API.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/media_uploader_mock.go -package=mock

// MediaUploader persists a locally staged media file on the external image
// host and returns the hosted URL.
//
// Implementations consume the local file exactly once: it is removed after
// the upload attempt regardless of outcome, so a retried request must stage
// the file again.
type MediaUploader interface {
	// Upload pushes the file at localPath to the image host. On success it
	// returns the public URL of the hosted asset; on any failure it returns
	// an error wrapping [ErrUploadFailed].
	Upload(ctx context.Context, localPath string) (string, error)
}
