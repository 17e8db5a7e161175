package http

import (
	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/service"
)

type Handler struct {
	services *service.Services

	// tempUploadDir is where multipart file fields are staged before the
	// media uploader consumes them.
	tempUploadDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		tempUploadDir: cfg.Storage.Files.TempUploadDir,
		logger:        logger,
	}
}
