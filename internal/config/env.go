package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, SERVER_* and STORAGE_* variables. Unset
// variables leave the corresponding fields untouched so later sources can
// still provide them.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	return nil
}
