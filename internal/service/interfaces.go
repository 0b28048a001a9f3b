package service

import (
	"context"

	"github.com/MKhiriev/dataset-hub/models"
)

type AuthService interface {
	// RegisterUser creates an account and returns it with its assigned ID.
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)

	// Login verifies the credentials and opens a new session.
	Login(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error)

	// Logout ends the session of identity.
	Logout(ctx context.Context, identity models.Identity) error

	// Authenticate resolves a session token to the user and session it names.
	Authenticate(ctx context.Context, tokenString string) (models.Identity, error)
}

type UserService interface {
	Profile(ctx context.Context, identity models.Identity) (models.User, error)
	UpdateProfile(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error
}

type DatasetService interface {
	ListDatasets(ctx context.Context) ([]models.Dataset, error)
	GetDataset(ctx context.Context, datasetID int64) (models.Dataset, error)

	// CreateDataset stores the uploaded file and records the dataset as owned
	// by owner.
	CreateDataset(ctx context.Context, owner models.User, request models.CreateDatasetRequest) (models.Dataset, error)

	// CreateMockDataset records a dataset without a file, owned by the first
	// registered user.
	CreateMockDataset(ctx context.Context) (models.Dataset, error)

	// OpenFile opens a stored dataset file by its key.
	OpenFile(ctx context.Context, key string) (models.StoredFile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) error
}

// AuthServiceWrapper, UserServiceWrapper and DatasetServiceWrapper compose
// decorators (such as validation) around a service implementation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

type UserServiceWrapper interface {
	Wrap(UserService) UserService
}

type DatasetServiceWrapper interface {
	Wrap(DatasetService) DatasetService
}
