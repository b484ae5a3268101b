package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/bookmarks/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file (the one given with -env-file, which must
// exist, or ./.env when present) into the process environment without
// overriding variables already set, then overlays every tagged field whose
// variable is set and non-empty.
func parseEnv(config *Config, args []string) error {
	if err := loadDotEnv(flagx.EnvFile(args)); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
