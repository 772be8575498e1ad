package config

import (
	"os"
	"path/filepath"
	"sync"

	"acordos/debt-parser/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory, or its parent, into
// the process environment. Variables already set are not overridden. It runs
// at most once per process and returns the file used, if any.
func LoadEnv(logger logging.Logger) string {
	var loaded string
	envOnce.Do(func() {
		loaded = loadEnvFile(logger, ".env", filepath.Join("..", ".env"))
	})
	return loaded
}

func loadEnvFile(logger logging.Logger, candidates ...string) string {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
