// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/dataset-hub/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with the assigned ID.
	// Returns ErrUsernameAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername performs a case-sensitive lookup.
	// Returns ErrUserNotFound when nothing matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID returns ErrUserNotFound when nothing matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FirstUser returns the user with the smallest ID.
	FirstUser(ctx context.Context) (models.User, error)

	// UpdateProfile applies the non-nil fields of update and returns the
	// resulting user.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// DatasetRepository persists dataset metadata.
type DatasetRepository interface {
	// CreateDataset inserts dataset and returns it with the assigned ID.
	CreateDataset(ctx context.Context, dataset models.Dataset) (models.Dataset, error)

	// ListDatasets returns every dataset, newest first.
	ListDatasets(ctx context.Context) ([]models.Dataset, error)

	// FindDatasetByID returns ErrDatasetNotFound when nothing matches.
	FindDatasetByID(ctx context.Context, datasetID int64) (models.Dataset, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session models.Session) error

	// FindSession returns ErrSessionNotFound when the session does not exist.
	// Expiry is not checked.
	FindSession(ctx context.Context, sessionID string) (models.Session, error)

	// DeleteSession is a no-op for unknown sessions.
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteUserSessions removes every session of userID except the one
	// named by keepSessionID (which may be empty).
	DeleteUserSessions(ctx context.Context, userID int64, keepSessionID string) error
}

// FileStorage stores uploaded dataset files under opaque keys.
type FileStorage interface {
	// Save writes upload under key.
	Save(ctx context.Context, key string, upload models.Upload) error

	// Open returns the stored file. The caller must close its Content.
	// Returns ErrFileNotFound when key names no file.
	Open(ctx context.Context, key string) (models.StoredFile, error)

	// Delete removes the file. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
