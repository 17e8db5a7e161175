package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// maxMultipartMemory caps how much of a multipart body is held in memory
// while parsing; larger file parts spill to disk.
const maxMultipartMemory = 32 << 20

// stageFormFile copies the named multipart file field into dir and returns
// the staged file's path. An absent field is not an error: the empty string
// is returned so callers can treat the file as optional. The staged file is
// owned by whoever consumes the path (the media uploader removes it after
// the upload attempt).
func (h *Handler) stageFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("reading form file %q failed: %w", field, err)
	}
	defer file.Close()

	return h.stageFile(file, header)
}

func (h *Handler) stageFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.tempUploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir failed: %w", err)
	}

	staged, err := os.CreateTemp(h.tempUploadDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("creating staged file failed: %w", err)
	}
	defer staged.Close()

	if _, err := io.Copy(staged, file); err != nil {
		os.Remove(staged.Name())
		return "", fmt.Errorf("writing staged file failed: %w", err)
	}

	return staged.Name(), nil
}
