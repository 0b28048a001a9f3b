package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/handler"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/server"
	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/internal/store"
	"github.com/MKhiriev/dataset-hub/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("dataset-hub-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	cfg.App.Version = buildInfo.VersionOr(cfg.App.Version)

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("files_driver", cfg.Storage.Files.Driver).
		Str("sessions_driver", cfg.Storage.Sessions.Driver).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
