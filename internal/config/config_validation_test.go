package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.SessionSignKey = "secret"
	cfg.Storage.DB.DSN = "sqlite://test.db"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(cfg *StructuredConfig) {}},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.SessionSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "non-positive session duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.SessionDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.BcryptCost = 2 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero upload size",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.MaxUploadSize = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:   "valid base path",
			mutate: func(cfg *StructuredConfig) { cfg.Server.BasePath = "/api" },
		},
		{
			name:    "base path with trailing slash",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.BasePath = "/api/" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "base path without leading slash",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.BasePath = "api" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "unknown files driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files.Driver = "ftp" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "fs driver without directory",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files.BinaryDataDir = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "minio without credentials",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Files = Files{Driver: FilesDriverMinio, Endpoint: "minio:9000", Bucket: "b"}
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "complete minio",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Files = Files{Driver: FilesDriverMinio, Endpoint: "minio:9000", Bucket: "b", AccessKey: "a", SecretKey: "s"}
			},
		},
		{
			name:    "s3 without region",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files = Files{Driver: FilesDriverS3, Bucket: "b"} },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "complete s3",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Files = Files{Driver: FilesDriverS3, Bucket: "b", Region: "us-east-1"}
			},
		},
		{
			name:    "redis sessions without address",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Sessions.Driver = SessionsDriverRedis },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown session driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Sessions.Driver = "memcached" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateStorage_IgnoresAppSettings(t *testing.T) {
	cfg := validConfig()
	cfg.App.SessionSignKey = ""

	assert.NoError(t, cfg.validateStorage())
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
}
