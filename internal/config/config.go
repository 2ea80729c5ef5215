package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration, populated from environment
// variables with defaults applied where unset.
type Config struct {
	// Imagery catalog connection.
	CatalogBaseURL string
	CatalogAPIKey  string
	CatalogProject string

	// Batch inputs/outputs.
	InputCSV  string
	OutputDir string

	// Query parameters.
	BufferDeg     float64
	CloudCoverMax float64
	ThumbSize     int
	VisMin        float64
	VisMax        float64

	// Dispatcher behavior.
	Workers          int
	HTTPTimeout      time.Duration
	RetryAttempts    int
	FilenameWithDate bool

	// Observability.
	LogLevel    string
	MetricsAddr string

	// Optional object-storage mirror of downloaded thumbnails.
	// Enabled iff MinIOEndpoint is set.
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// MirrorEnabled reports whether downloads should also be uploaded to
// object storage.
func (c *Config) MirrorEnabled() bool {
	return c.MinIOEndpoint != ""
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing or values are invalid.
func Load() (*Config, error) {
	config := Config{}

	config.CatalogBaseURL = os.Getenv("CATALOG_BASE_URL")
	if config.CatalogBaseURL == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "CATALOG_BASE_URL"}
	}
	config.CatalogAPIKey = os.Getenv("CATALOG_API_KEY")
	if config.CatalogAPIKey == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "CATALOG_API_KEY"}
	}
	config.CatalogProject = os.Getenv("CATALOG_PROJECT")
	if config.CatalogProject == "" {
		return nil, &ErrMissingRequiredEnvVar{Name: "CATALOG_PROJECT"}
	}

	config.InputCSV = envOrDefault("INPUT_CSV", "fires.csv")
	config.OutputDir = envOrDefault("OUTPUT_DIR", "fire_images")
	config.LogLevel = envOrDefault("LOG_LEVEL", "info")
	config.MetricsAddr = os.Getenv("METRICS_ADDR")

	var err error
	if config.BufferDeg, err = parseFloat("BUFFER_DEG", 0.02); err != nil {
		return nil, err
	}
	if config.CloudCoverMax, err = parseFloat("CLOUD_COVER_MAX", 20); err != nil {
		return nil, err
	}
	if config.VisMin, err = parseFloat("VIS_MIN", 0); err != nil {
		return nil, err
	}
	if config.VisMax, err = parseFloat("VIS_MAX", 0.5); err != nil {
		return nil, err
	}
	if config.ThumbSize, err = parseInt("THUMB_SIZE", 512); err != nil {
		return nil, err
	}
	if config.Workers, err = parseInt("WORKERS", 5); err != nil {
		return nil, err
	}
	if config.RetryAttempts, err = parseInt("RETRY_ATTEMPTS", 3); err != nil {
		return nil, err
	}
	if config.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	config.FilenameWithDate = os.Getenv("FILENAME_WITH_DATE") == "true"

	if config.BufferDeg <= 0 {
		return nil, fmt.Errorf("BUFFER_DEG must be positive, got %v", config.BufferDeg)
	}
	if config.Workers <= 0 {
		return nil, fmt.Errorf("WORKERS must be positive, got %d", config.Workers)
	}
	if config.VisMax <= config.VisMin {
		return nil, fmt.Errorf("VIS_MAX (%v) must be greater than VIS_MIN (%v)", config.VisMax, config.VisMin)
	}

	config.MinIOEndpoint = os.Getenv("MINIO_ENDPOINT")
	if config.MinIOEndpoint != "" {
		config.MinIOAccessKey = os.Getenv("MINIO_ACCESS_KEY")
		if config.MinIOAccessKey == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_ACCESS_KEY"}
		}
		config.MinIOSecretKey = os.Getenv("MINIO_SECRET_KEY")
		if config.MinIOSecretKey == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_SECRET_KEY"}
		}
		config.MinIOBucket = os.Getenv("MINIO_BUCKET")
		if config.MinIOBucket == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: "MINIO_BUCKET"}
		}
		config.MinIOUseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	}

	return &config, nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func parseFloat(name string, fallback float64) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func parseInt(name string, fallback int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func parseDuration(name string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
