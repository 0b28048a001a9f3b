// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
)

// Storages groups every persistence dependency of the server.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	DatasetRepository DatasetRepository
	SessionStore      SessionStore
	FileStorage       FileStorage

	redis *redis.Client
}

// NewStorages connects to the database, applies migrations and builds the
// session store and file storage selected by cfg.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	storages := &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		DatasetRepository: NewDatasetRepository(db, log),
	}

	switch cfg.Sessions.Driver {
	case config.SessionsDriverDB, "":
		storages.SessionStore = NewSessionRepository(db, log)
	case config.SessionsDriverRedis:
		storages.SessionStore, storages.redis, err = NewRedisSessionStore(ctx, cfg.Sessions, log)
	default:
		err = fmt.Errorf("%w: sessions driver %q", ErrUnsupportedDriver, cfg.Sessions.Driver)
	}
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	if storages.FileStorage, err = NewFileStorage(ctx, cfg.Files, log); err != nil {
		_ = storages.Close()
		return nil, err
	}

	return storages, nil
}

// NewFileStorage builds the blob storage named by cfg.Driver.
func NewFileStorage(ctx context.Context, cfg config.Files, log *logger.Logger) (FileStorage, error) {
	switch cfg.Driver {
	case config.FilesDriverFS, "":
		return NewFileSystemStorage(cfg.BinaryDataDir, log)
	case config.FilesDriverMinio:
		return NewMinioStorage(ctx, cfg, log)
	case config.FilesDriverS3:
		return NewS3Storage(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: files driver %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Ping checks that the database answers.
func (s *Storages) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close releases the database and redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}

	return errors.Join(errs...)
}
