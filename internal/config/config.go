// Package config loads the tickfsm command configuration from the
// environment. A .env file in the working directory is read first when
// present; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig wraps every failure to load Config.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by every tickfsm subcommand.
type Config struct {
	LogLevel   string `env:"TICKFSM_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"TICKFSM_LOG_FORMAT" envDefault:"text"`
	TableLimit int    `env:"TICKFSM_TABLE_LIMIT" envDefault:"0"`
	Dedup      bool   `env:"TICKFSM_DEDUP" envDefault:"true"`
}

// Load reads Config from the environment.
func Load() (Config, error) {
	// the .env file is optional
	_ = godotenv.Load()

	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.TableLimit < 0 {
		return Config{}, fmt.Errorf("%w: TICKFSM_TABLE_LIMIT must not be negative", ErrInvalidConfig)
	}

	return cfg, nil
}
