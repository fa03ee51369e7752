package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort int

	// DataDir holds the two flat CSV stores.
	DataDir        string
	RecordFilePath string
	RosterFilePath string

	// PhotoBackend selects where player photos live: "local" (a directory
	// next to the CSV files) or "r2".
	PhotoBackend string
	PhotoDir     string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally loading
// a .env file first (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	photoBackend := os.Getenv("PHOTO_BACKEND")
	if photoBackend == "" {
		photoBackend = "local"
	}
	if photoBackend != "local" && photoBackend != "r2" {
		return nil, fmt.Errorf("PHOTO_BACKEND must be \"local\" or \"r2\", got %q", photoBackend)
	}

	photoDir := os.Getenv("PHOTO_DIR")
	if photoDir == "" {
		photoDir = filepath.Join(dataDir, "images")
	}

	cfg := &Config{
		ServerPort:        port,
		DataDir:           dataDir,
		RecordFilePath:    filepath.Join(dataDir, "data.csv"),
		RosterFilePath:    filepath.Join(dataDir, "players.csv"),
		PhotoBackend:      photoBackend,
		PhotoDir:          photoDir,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}
