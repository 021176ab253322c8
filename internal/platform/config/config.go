// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	Port            string
	Version         string
	ShutdownTimeout time.Duration
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads variables from the optional env files (".env" when none are given),
// without overriding variables that are already set, and builds a Config.
// version is used unless APP_VERSION is set.
func Load(version string, files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:            getenv("PORT", defaultPort),
		Version:         getenv("APP_VERSION", version),
		ShutdownTimeout: defaultShutdownTimeout,
	}
	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("invalid PORT %q: %w", cfg.Port, err)
	}
	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
