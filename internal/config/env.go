package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// FromEnv loads the process configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
