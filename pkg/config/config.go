// Package config resolves runtime configuration from environment variables,
// optionally loading a .env file first.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Token is a personal access token with read access to the
	// organization's repositories.
	Token string
	// Org is the default organization login, overridable per command.
	Org string
	// OutputDir is where reports are written. Defaults to "output".
	OutputDir string
}

const defaultOutputDir = "output"

// Load reads .env if it exists and resolves configuration from the
// environment. A missing .env is not an error.
func Load(logE *logrus.Entry) *Config {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logE.WithError(err).Warn("load .env")
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves configuration with a getenv function so tests don't
// touch the process environment.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		Token:     getenv("GITHUB_TOKEN"),
		Org:       getenv("ORGKIT_ORG"),
		OutputDir: getenv("ORGKIT_OUTPUT_DIR"),
	}
	if cfg.Token == "" {
		cfg.Token = getenv("GH_TOKEN")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	return cfg
}
