package workers

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
)

const (
	// stagedFilePrefix matches the names the transport layer gives to
	// staged multipart uploads.
	stagedFilePrefix = "upload-"

	defaultSweepInterval = 10 * time.Minute
	defaultMaxAge        = time.Hour
)

// UploadJanitor periodically removes stale staged files from the temporary
// upload directory. The media uploader deletes each staged file it consumes;
// files survive only when a request dies between staging and upload (a failed
// multipart parse, a crash mid-request), so anything older than maxAge is an
// orphan.
type UploadJanitor struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration

	logger *logger.Logger
}

// NewUploadJanitor builds a janitor over the configured staging directory.
func NewUploadJanitor(cfg config.Files, logger *logger.Logger) *UploadJanitor {
	return &UploadJanitor{
		dir:      cfg.TempUploadDir,
		interval: defaultSweepInterval,
		maxAge:   defaultMaxAge,
		logger:   logger,
	}
}

// Run blocks, sweeping the staging directory on every tick.
func (j *UploadJanitor) Run() {
	j.sweep()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for range ticker.C {
		j.sweep()
	}
}

// sweep removes staged files older than maxAge. Unreadable entries are
// skipped; the next sweep retries them.
func (j *UploadJanitor) sweep() {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Err(err).Str("dir", j.dir).Msg("reading upload dir failed")
		}
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), stagedFilePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(j.dir, entry.Name())); err != nil {
			j.logger.Err(err).Str("file", entry.Name()).Msg("removing stale staged file failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info().Int("removed", removed).Str("dir", j.dir).Msg("stale staged uploads removed")
	}
}
