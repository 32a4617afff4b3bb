// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/lens"
)

const (
	DefaultAddr          = ":8080"
	DefaultLens          = "interpersonal"
	DefaultQuestionCount = 25
	dataDirName          = ".lenscheck"
)

// Config holds settings that flags may override.
type Config struct {
	DataDir       string
	Addr          string
	DefaultLens   string
	RankMode      assess.RankMode
	QuestionCount int
}

// Load reads .env files if present, then the environment.
// Files are optional; a missing .env is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	dataDir := os.Getenv("LENSCHECK_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config.Load: home dir: %w", err)
		}
		dataDir = filepath.Join(home, dataDirName)
	}

	mode, ok := assess.ParseRankMode(os.Getenv("LENSCHECK_RANK_MODE"))
	if !ok {
		return nil, fmt.Errorf("config.Load: LENSCHECK_RANK_MODE: unknown mode %q", mode)
	}

	count := DefaultQuestionCount
	if raw := os.Getenv("LENSCHECK_QUESTION_COUNT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config.Load: LENSCHECK_QUESTION_COUNT: must be a positive integer, got %q", raw)
		}
		count = n
	}

	return &Config{
		DataDir:       dataDir,
		Addr:          getEnvOrDefault("LENSCHECK_ADDR", DefaultAddr),
		DefaultLens:   lens.Normalize(getEnvOrDefault("LENSCHECK_DEFAULT_LENS", DefaultLens)),
		RankMode:      mode,
		QuestionCount: count,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
