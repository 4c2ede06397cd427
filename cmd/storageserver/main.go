package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/handler"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/server"
	"github.com/MKhiriev/go-sync15/internal/service"
	"github.com/MKhiriev/go-sync15/internal/store"
	"github.com/MKhiriev/go-sync15/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("storageserver")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.Version
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("error running server")
	}
}
