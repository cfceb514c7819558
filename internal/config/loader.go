package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults
//  2. YAML file, if BACKEND_CONFIG points at one
//  3. environment variables (DB_HOST, DB_NAME, DB_USER, DB_PASSWORD, ...)
//
// Environment keys map directly onto koanf tags: DB_HOST -> db_host.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("BACKEND_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DBHost == "" {
		return nil, errors.New("db_host must not be empty")
	}
	if cfg.HTTPPort == "" {
		return nil, errors.New("http_port must not be empty")
	}
	return &cfg, nil
}
