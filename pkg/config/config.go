package config

import (
	"os"

	"suspectgrid/pkg/constants"
)

// Config holds the environment-derived settings for the demo HTTP transport
// and CLI tools. There is no session or auth concern in this domain, so
// there is no secret to validate.
type Config struct {
	Port        string
	PuzzlesFile string
}

// Load loads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", constants.DefaultPort),
		PuzzlesFile: getEnv("PUZZLES_FILE", constants.DefaultPuzzlesFile),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
