package service

import (
	"github.com/vidtube/accounts/internal/adapter"
	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/store"
)

type Services struct {
	AuthService    AuthService
	ProfileService ProfileService
	TokenService   TokenService
}

func NewServices(storages *store.Storages, uploader adapter.MediaUploader, hasher store.PasswordHasher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokenService := NewTokenService(cfg.App, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, tokenService, uploader, hasher, cfg.App, logger),
		ProfileService: NewProfileService(storages.UserRepository, storages.ChannelRepository, uploader, logger),
		TokenService:   tokenService,
	}
}
