package adapter

import "errors"

var (
	// ErrUploadFailed is returned when the image host rejects an upload or
	// the request cannot be completed. Callers decide whether the failure
	// is fatal (mandatory avatar) or tolerable (optional cover image).
	ErrUploadFailed = errors.New("media upload failed")
)
