package config

import "time"

const (
	defaultHTTPAddress     = "localhost:8080"
	defaultSessionIssuer   = "dataset-hub"
	defaultSessionDuration = 14 * 24 * time.Hour
	defaultBcryptCost      = 10
	defaultRequestTimeout  = 30 * time.Second
	defaultMaxUploadSize   = 100 << 20
	defaultBinaryDataDir   = "media"
	defaultLogLevel        = "debug"
	defaultVersion         = "dev"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionIssuer:   defaultSessionIssuer,
			SessionDuration: defaultSessionDuration,
			BcryptCost:      defaultBcryptCost,
			LogLevel:        defaultLogLevel,
			Version:         defaultVersion,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			MaxUploadSize:  defaultMaxUploadSize,
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Storage: Storage{
			Files: Files{
				Driver:        FilesDriverFS,
				BinaryDataDir: defaultBinaryDataDir,
			},
			Sessions: Sessions{
				Driver: SessionsDriverDB,
			},
		},
	}
}
