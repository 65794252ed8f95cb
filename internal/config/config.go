// Package config reads workspace settings from ROTA_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/rota/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds every setting the CLI reads from the environment.
type Config struct {
	// File is the roster document path.
	File string
	// DBPath is the snapshot archive database.
	DBPath      string
	DefaultCode string
	WindowDays  int
	Title       string
	StrictCodes bool
	StrictRange bool
	ArchiveKeep int
	LogUseCases bool
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		File:        "roster.json",
		DBPath:      defaultDBPath(),
		DefaultCode: domain.DefaultShiftCode,
		WindowDays:  45,
		Title:       "Staff Roster",
		ArchiveKeep: 20,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rota", "rota.db")
	}
	return filepath.Join(home, ".rota", "rota.db")
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoadConfig reads configuration from environment variables, falling back
// to defaults for unset or malformed values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("ROTA_FILE")); v != "" {
		cfg.File = v
	}
	if v := strings.TrimSpace(os.Getenv("ROTA_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("ROTA_DEFAULT_CODE")); v != "" {
		cfg.DefaultCode = v
	}
	if v, ok := os.LookupEnv("ROTA_TITLE"); ok {
		cfg.Title = v
	}
	if v := os.Getenv("ROTA_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.WindowDays = n
		}
	}
	if v := os.Getenv("ROTA_ARCHIVE_KEEP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ArchiveKeep = n
		}
	}
	cfg.StrictCodes = boolEnv("ROTA_STRICT_CODES", cfg.StrictCodes)
	cfg.StrictRange = boolEnv("ROTA_STRICT_RANGE", cfg.StrictRange)
	cfg.LogUseCases = boolEnv("ROTA_LOG_USE_CASES", cfg.LogUseCases)

	return cfg
}

func boolEnv(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
