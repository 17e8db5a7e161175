package main

import (
	"context"
	"fmt"

	"github.com/vidtube/accounts/internal/adapter"
	"github.com/vidtube/accounts/internal/config"
	"github.com/vidtube/accounts/internal/handler"
	"github.com/vidtube/accounts/internal/logger"
	"github.com/vidtube/accounts/internal/server"
	"github.com/vidtube/accounts/internal/service"
	"github.com/vidtube/accounts/internal/store"
	"github.com/vidtube/accounts/internal/utils"
	"github.com/vidtube/accounts/internal/workers"
	"github.com/vidtube/accounts/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("accounts-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	hasher := utils.NewPasswordHasher(cfg.App.BcryptCost)
	storages := store.NewStorages(db, hasher, utils.NewUUIDGenerator(), log)

	uploader, err := adapter.NewHTTPMediaUploader(cfg.Media, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating media uploader")
	}

	services := service.NewServices(storages, uploader, hasher, *cfg, log)

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	go workers.NewWorkers(workers.NewUploadJanitor(cfg.Storage.Files, log)).Run()

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
