package service

import (
	"context"

	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

// AuthValidationService validates registration payloads before they reach
// the wrapped AuthService. Validation failures are returned unwrapped as
// [validators.FieldErrors].
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{validator: validators.NewUserValidator()}
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, err
	}

	return v.inner.RegisterUser(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error) {
	return v.inner.Login(ctx, request)
}

func (v *AuthValidationService) Logout(ctx context.Context, identity models.Identity) error {
	return v.inner.Logout(ctx, identity)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

// UserValidationService validates profile and password payloads.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{validator: validators.NewUserValidator()}
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.inner = inner
	return v
}

func (v *UserValidationService) Profile(ctx context.Context, identity models.Identity) (models.User, error) {
	return v.inner.Profile(ctx, identity)
}

func (v *UserValidationService) UpdateProfile(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, err
	}

	return v.inner.UpdateProfile(ctx, identity, request)
}

// ChangePassword validates structure first, so a malformed request is
// rejected before the old password is checked.
func (v *UserValidationService) ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return err
	}

	return v.inner.ChangePassword(ctx, identity, request)
}

// DatasetValidationService validates dataset creation payloads.
type DatasetValidationService struct {
	inner     DatasetService
	validator validators.Validator
}

func NewDatasetValidationService() DatasetServiceWrapper {
	return &DatasetValidationService{validator: validators.NewDatasetValidator()}
}

func (v *DatasetValidationService) Wrap(inner DatasetService) DatasetService {
	v.inner = inner
	return v
}

func (v *DatasetValidationService) ListDatasets(ctx context.Context) ([]models.Dataset, error) {
	return v.inner.ListDatasets(ctx)
}

func (v *DatasetValidationService) GetDataset(ctx context.Context, datasetID int64) (models.Dataset, error) {
	return v.inner.GetDataset(ctx, datasetID)
}

func (v *DatasetValidationService) CreateDataset(ctx context.Context, owner models.User, request models.CreateDatasetRequest) (models.Dataset, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Dataset{}, err
	}

	return v.inner.CreateDataset(ctx, owner, request)
}

func (v *DatasetValidationService) CreateMockDataset(ctx context.Context) (models.Dataset, error) {
	return v.inner.CreateMockDataset(ctx)
}

func (v *DatasetValidationService) OpenFile(ctx context.Context, key string) (models.StoredFile, error) {
	return v.inner.OpenFile(ctx, key)
}
