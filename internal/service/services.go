// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/store"
)

// Services aggregates the application services, each already wrapped in its
// validation decorator.
type Services struct {
	AuthService    AuthService
	UserService    UserService
	DatasetService DatasetService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(storages.UserRepository, storages.SessionStore, cfg, logger)
	if err != nil {
		return nil, err
	}

	userService, err := NewUserService(storages.UserRepository, storages.SessionStore, cfg.BcryptCost, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg, storages, logger)
	if err != nil {
		return nil, err
	}

	datasetService := NewDatasetService(storages.UserRepository, storages.DatasetRepository, storages.FileStorage, logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		UserService:    NewUserValidationService().Wrap(userService),
		DatasetService: NewDatasetValidationService().Wrap(datasetService),
		AppInfoService: appInfoService,
	}, nil
}
