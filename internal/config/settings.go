package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadSettings.
const (
	EnvTablePath = "IRS_TABLE_PATH"
	EnvFormat    = "IRS_FORMAT"
	EnvLogLevel  = "IRS_LOG_LEVEL"
)

// Defaults used when neither flags nor environment say otherwise.
const (
	DefaultTablePath = "data/tabela_irs.csv"
	DefaultFormat    = "console"
	DefaultLogLevel  = "warn"
)

// Settings are process-wide defaults for the command line.
type Settings struct {
	TablePath string
	Format    string
	LogLevel  string
}

// LoadEnv loads KEY=VALUE pairs from the given .env files into the process
// environment. Variables already set are left alone. With no files it reads
// ".env" and a missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files %s: %w", strings.Join(files, ", "), err)
	}
	return nil
}

// LoadSettings reads Settings from the environment.
func LoadSettings() Settings {
	return Settings{
		TablePath: getenv(EnvTablePath, DefaultTablePath),
		Format:    getenv(EnvFormat, DefaultFormat),
		LogLevel:  getenv(EnvLogLevel, DefaultLogLevel),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
