// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
)

func stageFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestUploader(t *testing.T, serverURL string) MediaUploader {
	t.Helper()
	uploader, err := NewHTTPMediaUploader(config.Media{
		UploadURL:      serverURL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return uploader
}

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://img.example.com/a/avatar.png"}`))
	}))
	defer srv.Close()

	path := stageFile(t, "fake-png-bytes")
	uploader := newTestUploader(t, srv.URL)

	hostedURL, err := uploader.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/a/avatar.png", hostedURL)

	// the staged file is consumed by the upload
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpload_HostRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	path := stageFile(t, "fake-png-bytes")
	uploader := newTestUploader(t, srv.URL)

	_, err := uploader.Upload(context.Background(), path)
	assert.ErrorIs(t, err, ErrUploadFailed)

	// consumed even on failure
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpload_EmptyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty path")
	}))
	defer srv.Close()

	uploader := newTestUploader(t, srv.URL)

	_, err := uploader.Upload(context.Background(), "")
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUpload_NoURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	path := stageFile(t, "fake-png-bytes")
	uploader := newTestUploader(t, srv.URL)

	_, err := uploader.Upload(context.Background(), path)
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestNewHTTPMediaUploader_InvalidURL(t *testing.T) {
	_, err := NewHTTPMediaUploader(config.Media{UploadURL: ""}, logger.Nop())
	assert.Error(t, err)
}
