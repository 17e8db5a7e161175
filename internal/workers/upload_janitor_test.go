// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The VidTube Authors

package workers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
)

func writeFileAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("staged"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestUploadJanitor_SweepRemovesOnlyStaleStagedFiles(t *testing.T) {
	dir := t.TempDir()

	stale := writeFileAged(t, dir, "upload-abc.png", 2*time.Hour)
	fresh := writeFileAged(t, dir, "upload-def.png", time.Minute)
	unrelated := writeFileAged(t, dir, "notes.txt", 2*time.Hour)

	janitor := NewUploadJanitor(config.Files{TempUploadDir: dir}, logger.Nop())
	janitor.sweep()

	assert.NoFileExists(t, stale, "stale staged file must be removed")
	assert.FileExists(t, fresh, "fresh staged file must survive")
	assert.FileExists(t, unrelated, "files without the staged prefix must survive")
}

func TestUploadJanitor_SweepMissingDir(t *testing.T) {
	janitor := NewUploadJanitor(config.Files{TempUploadDir: filepath.Join(t.TempDir(), "missing")}, logger.Nop())

	// must not panic or create the directory
	janitor.sweep()
	assert.NoDirExists(t, janitor.dir)
}

type countingWorker struct {
	runs int
}

func (w *countingWorker) Run() { w.runs++ }

func TestWorkers_RunsAll(t *testing.T) {
	first := &countingWorker{}
	second := &countingWorker{}

	NewWorkers(first, second).Run()

	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)
}
