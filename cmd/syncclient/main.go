package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync15/internal/client"
	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	wipe := flag.Bool("wipe", false, "Delete all local data and sync state, then exit")
	logPath := flag.String("log-file", "", "Append logs to this file instead of stderr")

	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetClientConfig()
	log := logger.NewClientLogger("syncclient", *logPath)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}
	defer app.Close()

	if *wipe {
		if err = app.Wipe(ctx); err != nil {
			log.Error().Err(err).Msg("wipe failed")
			return
		}
		log.Info().Msg("local data wiped")
		return
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}
