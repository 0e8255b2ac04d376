// Package config loads rpgkit settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	ContentDir string `env:"RPGKIT_CONTENT_DIR"`
	SaveDir    string `env:"RPGKIT_SAVE_DIR"`
	Format     string `env:"RPGKIT_FORMAT" envDefault:"json"`
	Seed       int64  `env:"RPGKIT_SEED"` // 0 picks a time-based seed

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"RPGKIT_LOG_FILE"` // empty logs to stderr
}

// Load reads the given .env files (default ".env") without overriding
// variables already set, then parses the environment. Missing .env files
// are not an error.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SaveDir == "" {
		home, _ := os.UserHomeDir()
		cfg.SaveDir = filepath.Join(home, ".rpgkit", "saves")
	}
	return &cfg, nil
}
