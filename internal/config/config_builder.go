package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	args    []string
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
		args:    os.Args[1:],
	}
}

// build merges the collected configs in order, so a field set by an earlier
// source is never overwritten by a later one, then runs validators.
func (b *configBuilder) build(validators ...func(*StructuredConfig) error) (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	for _, validate := range validators {
		if err := validate(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// add appends the config produced by source. Errors are accumulated and
// reported by build.
func (b *configBuilder) add(source func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := source()
	switch {
	case err != nil:
		b.err = errors.Join(b.err, err)
	case cfg != nil:
		b.configs = append(b.configs, cfg)
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		cfg := new(StructuredConfig)
		return cfg, parseEnv(cfg)
	})
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return ParseFlags(b.args)
	})
}

// withJSON loads the file named by the first source that set one.
func (b *configBuilder) withJSON() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		for _, cfg := range b.configs {
			if cfg.JSONFilePath != "" {
				return parseJSON(cfg.JSONFilePath)
			}
		}

		return nil, nil
	})
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return defaultConfig(), nil
	})
}
