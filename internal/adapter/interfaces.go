// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a Go client for the dataset-hub HTTP API.
//
// [APIClient] covers the account and dataset endpoints. Non-2xx responses
// are returned as [*APIError], which unwraps to a sentinel per status code
// (e.g. [ErrUnauthorized] for 401) so callers can use [errors.Is]. Field
// validation messages of a 400 response are available in APIError.Fields.
package adapter

import (
	"context"

	"github.com/MKhiriev/dataset-hub/models"
)

// APIClient is a session-aware client of the dataset-hub API. After Login
// the session token is attached to every request until Logout.
type APIClient interface {
	// Token returns the current session token, or "" when logged out.
	Token() string

	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)

	// Login opens a session and keeps its token for subsequent requests.
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)

	// Logout deletes the server-side session and forgets the token.
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, request models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error

	ListDatasets(ctx context.Context) ([]models.DatasetResponse, error)
	GetDataset(ctx context.Context, datasetID int64) (models.DatasetResponse, error)

	// CreateDataset uploads request.File as a multipart form.
	CreateDataset(ctx context.Context, request models.CreateDatasetRequest) (models.DatasetResponse, error)

	Version(ctx context.Context) (string, error)
	Health(ctx context.Context) error
}
