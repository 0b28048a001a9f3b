package http

import (
	"context"
	"time"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/service"
	"github.com/MKhiriev/dataset-hub/models"
)

// ---- Service mocks ----

type mockAuthService struct {
	registerUserFn func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn        func(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error)
	logoutFn       func(ctx context.Context, identity models.Identity) error
	authenticateFn func(ctx context.Context, tokenString string) (models.Identity, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerUserFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error) {
	return m.loginFn(ctx, request)
}

func (m *mockAuthService) Logout(ctx context.Context, identity models.Identity) error {
	return m.logoutFn(ctx, identity)
}

func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	if m.authenticateFn == nil {
		return models.Identity{}, service.ErrSessionInvalid
	}
	return m.authenticateFn(ctx, tokenString)
}

type mockUserService struct {
	profileFn        func(ctx context.Context, identity models.Identity) (models.User, error)
	updateProfileFn  func(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error)
	changePasswordFn func(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error
}

func (m *mockUserService) Profile(ctx context.Context, identity models.Identity) (models.User, error) {
	return m.profileFn(ctx, identity)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, identity, request)
}

func (m *mockUserService) ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, identity, request)
}

type mockDatasetService struct {
	listDatasetsFn      func(ctx context.Context) ([]models.Dataset, error)
	getDatasetFn        func(ctx context.Context, datasetID int64) (models.Dataset, error)
	createDatasetFn     func(ctx context.Context, owner models.User, request models.CreateDatasetRequest) (models.Dataset, error)
	createMockDatasetFn func(ctx context.Context) (models.Dataset, error)
	openFileFn          func(ctx context.Context, key string) (models.StoredFile, error)
}

func (m *mockDatasetService) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	return m.listDatasetsFn(ctx)
}

func (m *mockDatasetService) GetDataset(ctx context.Context, datasetID int64) (models.Dataset, error) {
	return m.getDatasetFn(ctx, datasetID)
}

func (m *mockDatasetService) CreateDataset(ctx context.Context, owner models.User, request models.CreateDatasetRequest) (models.Dataset, error) {
	return m.createDatasetFn(ctx, owner, request)
}

func (m *mockDatasetService) CreateMockDataset(ctx context.Context) (models.Dataset, error) {
	return m.createMockDatasetFn(ctx)
}

func (m *mockDatasetService) OpenFile(ctx context.Context, key string) (models.StoredFile, error) {
	return m.openFileFn(ctx, key)
}

type mockAppInfoService struct {
	version  string
	healthFn func(ctx context.Context) error
}

func (m *mockAppInfoService) GetAppVersion(ctx context.Context) string {
	return m.version
}

func (m *mockAppInfoService) Health(ctx context.Context) error {
	if m.healthFn == nil {
		return nil
	}
	return m.healthFn(ctx)
}

// ---- Helpers ----

const testToken = "test-token"

var testUser = models.User{
	UserID:    7,
	Username:  "alice",
	Email:     "alice@example.com",
	FirstName: "Alice",
}

// newTestHandler returns a Handler with nop logging. Services left nil in
// services are replaced by empty mocks.
func newTestHandler(services *service.Services) *Handler {
	if services == nil {
		services = &service.Services{}
	}
	if services.AuthService == nil {
		services.AuthService = &mockAuthService{}
	}
	if services.UserService == nil {
		services.UserService = &mockUserService{}
	}
	if services.DatasetService == nil {
		services.DatasetService = &mockDatasetService{}
	}
	if services.AppInfoService == nil {
		services.AppInfoService = &mockAppInfoService{}
	}

	return NewHandler(services, config.Server{}, config.App{SessionDuration: time.Hour}, logger.Nop())
}

// authenticatedAs accepts testToken and resolves it to user.
func authenticatedAs(user models.User) *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(ctx context.Context, tokenString string) (models.Identity, error) {
			if tokenString != testToken {
				return models.Identity{}, service.ErrSessionInvalid
			}
			return models.Identity{User: user, Session: models.Session{ID: "session-1", UserID: user.UserID}}, nil
		},
	}
}
