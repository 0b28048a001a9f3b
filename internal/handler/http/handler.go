package http

import (
	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/service"
)

type Handler struct {
	services *service.Services

	server config.Server
	app    config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, server config.Server, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		server:   server,
		app:      app,
		logger:   logger,
	}
}
