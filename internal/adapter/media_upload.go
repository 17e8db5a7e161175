package adapter

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/utils"
)

// uploadResponse is the JSON body returned by the image host on a
// successful upload.
type uploadResponse struct {
	URL string `json:"url"`
}

type httpMediaUploader struct {
	client *utils.HTTPClient
	apiKey string

	logger *logger.Logger
}

// NewHTTPMediaUploader constructs an HTTP implementation of [MediaUploader].
// It normalises and validates the upload endpoint from cfg.UploadURL and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if cfg.UploadURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPMediaUploader(cfg config.Media, logger *logger.Logger) (MediaUploader, error) {
	uploadURL, err := normalizeUploadURL(cfg.UploadURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media upload address: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(uploadURL)

	return &httpMediaUploader{client: client, apiKey: cfg.APIKey, logger: logger}, nil
}

func normalizeUploadURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [MediaUploader]. It POSTs the staged file as a
// multipart form to the image host and returns the hosted URL from the
// response body.
//
// The local file is consumed exactly once: it is deleted after the upload
// attempt whether or not the attempt succeeded, matching the staging
// contract of the transport layer.
func (m *httpMediaUploader) Upload(ctx context.Context, localPath string) (string, error) {
	log := logger.FromContext(ctx)

	if localPath == "" {
		return "", fmt.Errorf("%w: no file to upload", ErrUploadFailed)
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			log.Warn().Err(err).Str("path", localPath).Msg("could not remove staged upload")
		}
	}()

	var uploaded uploadResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+m.apiKey).
		SetFile("file", localPath).
		SetFormData(map[string]string{
			"filename": filepath.Base(localPath),
		}).
		SetResult(&uploaded).
		Post("")
	if err != nil {
		log.Err(err).Str("path", localPath).Msg("media upload request failed")
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("path", localPath).Msg("media upload rejected")
		return "", fmt.Errorf("%w: image host returned %d", ErrUploadFailed, resp.StatusCode())
	}

	if uploaded.URL == "" {
		return "", fmt.Errorf("%w: image host returned no url", ErrUploadFailed)
	}

	log.Debug().Str("url", uploaded.URL).Msg("media uploaded")
	return uploaded.URL, nil
}
