// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// validate checks that the final merged [StructuredConfig] is usable by the
// API server.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.validateStorage(); err != nil {
		return err
	}

	if cfg.App.SessionSignKey == "" {
		return fmt.Errorf("%w: session sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.SessionIssuer == "" || cfg.App.SessionDuration <= 0 {
		return fmt.Errorf("%w: session issuer and a positive session duration are required", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < minBcryptCost || cfg.App.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: bcrypt cost must be in [%d, %d]", ErrInvalidAppConfigs, minBcryptCost, maxBcryptCost)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidServerConfigs)
	}
	if p := cfg.Server.BasePath; p != "" && (!strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/")) {
		return fmt.Errorf("%w: base path must start with '/' and must not end with '/'", ErrInvalidServerConfigs)
	}

	return nil
}

// validateStorage checks the storage section only.
func (cfg *StructuredConfig) validateStorage() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	files := cfg.Storage.Files
	switch files.Driver {
	case FilesDriverFS:
		if files.BinaryDataDir == "" {
			return fmt.Errorf("%w: binary data dir is required for fs driver", ErrInvalidStorageConfigs)
		}
	case FilesDriverMinio:
		if files.Endpoint == "" || files.Bucket == "" || files.AccessKey == "" || files.SecretKey == "" {
			return fmt.Errorf("%w: minio driver requires endpoint, bucket and credentials", ErrInvalidStorageConfigs)
		}
	case FilesDriverS3:
		if files.Bucket == "" || files.Region == "" {
			return fmt.Errorf("%w: s3 driver requires bucket and region", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown file storage driver %q", ErrInvalidStorageConfigs, files.Driver)
	}

	sessions := cfg.Storage.Sessions
	switch sessions.Driver {
	case SessionsDriverDB:
	case SessionsDriverRedis:
		if sessions.RedisAddress == "" {
			return fmt.Errorf("%w: redis session driver requires an address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown session driver %q", ErrInvalidStorageConfigs, sessions.Driver)
	}

	return nil
}
