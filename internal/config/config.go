// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// dataset-hub server. It is populated by merging values from environment
// variables, command-line flags, an optional JSON file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session, password hashing and presentation settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database, the file
	// storage and the session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listener, routing and request limit settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SessionSignKey is the secret used to sign and verify session tokens.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY"`

	// SessionIssuer is the "iss" claim of every session token.
	// Env: APP_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER"`

	// SessionDuration is the lifetime of a login session (e.g. "336h").
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashes.
	// Env: APP_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// MediaBaseURL is the absolute URL prefix of uploaded files
	// (e.g. "https://cdn.example.com/media/"). When empty, file URLs are
	// built from the request's scheme and host.
	// Env: APP_MEDIA_BASE_URL
	MediaBaseURL string `env:"MEDIA_BASE_URL"`

	// SecureCookies marks the session cookie Secure.
	// Env: APP_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`

	// LogLevel is the minimal level of emitted log entries.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is reported by the /version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and request settings for the HTTP API.
type Server struct {
	// HTTPAddress is the TCP address the server listens on, "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// BasePath mounts every route under a prefix (e.g. "/api").
	// Env: SERVER_BASE_PATH
	BasePath string `env:"BASE_PATH"`

	// RequestTimeout is the maximum duration of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadSize is the largest accepted dataset upload body, in bytes.
	// Env: SERVER_MAX_UPLOAD_SIZE
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE"`

	// AllowedOrigins lists the browser origins allowed by CORS.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the blob storage settings for uploaded dataset files.
	Files Files `envPrefix:"FILES_"`

	// Sessions selects and configures the session store.
	Sessions Sessions `envPrefix:"SESSIONS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its form:
	//   - "postgres://..." or "postgresql://..." opens PostgreSQL via pgx;
	//   - "sqlite://path", "file:path" or a path ending in ".db" opens SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// File storage drivers.
const (
	FilesDriverFS    = "fs"
	FilesDriverMinio = "minio"
	FilesDriverS3    = "s3"
)

// Files holds blob storage settings.
type Files struct {
	// Driver is one of "fs", "minio" or "s3".
	// Env: STORAGE_FILES_DRIVER
	Driver string `env:"DRIVER"`

	// BinaryDataDir is the root directory of the "fs" driver.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`

	// Endpoint is the object storage endpoint, "host:port" for minio or a
	// full URL for s3-compatible services. Empty selects AWS for "s3".
	// Env: STORAGE_FILES_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// Env: STORAGE_FILES_ACCESS_KEY
	AccessKey string `env:"ACCESS_KEY"`

	// Env: STORAGE_FILES_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Env: STORAGE_FILES_BUCKET
	Bucket string `env:"BUCKET"`

	// Env: STORAGE_FILES_REGION
	Region string `env:"REGION"`

	// Env: STORAGE_FILES_USE_SSL
	UseSSL bool `env:"USE_SSL"`
}

// Session store drivers.
const (
	SessionsDriverDB    = "db"
	SessionsDriverRedis = "redis"
)

// Sessions holds session store settings.
type Sessions struct {
	// Driver is "db" (sessions table) or "redis".
	// Env: STORAGE_SESSIONS_DRIVER
	Driver string `env:"DRIVER"`

	// Env: STORAGE_SESSIONS_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// Env: STORAGE_SESSIONS_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: STORAGE_SESSIONS_REDIS_DB
	RedisDB int `env:"REDIS_DB"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build((*StructuredConfig).validate)
}

// GetStorageConfig loads the configuration like [GetStructuredConfig] but
// only validates the storage section.
func GetStorageConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build((*StructuredConfig).validateStorage)
}
