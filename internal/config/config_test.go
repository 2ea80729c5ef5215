package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredVars = []string{"CATALOG_BASE_URL", "CATALOG_API_KEY", "CATALOG_PROJECT"}

func setRequired(t *testing.T) {
	t.Helper()
	for _, name := range requiredVars {
		t.Setenv(name, "test-value")
	}
}

func TestLoad_RequiredVarsMissing(t *testing.T) {
	for _, missing := range requiredVars {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")

			_, err := Load()
			require.Error(t, err)

			var wantErr *ErrMissingRequiredEnvVar
			require.ErrorAs(t, err, &wantErr)
			assert.Equal(t, missing, wantErr.Name)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fires.csv", cfg.InputCSV)
	assert.Equal(t, "fire_images", cfg.OutputDir)
	assert.Equal(t, 0.02, cfg.BufferDeg)
	assert.Equal(t, 20.0, cfg.CloudCoverMax)
	assert.Equal(t, 512, cfg.ThumbSize)
	assert.Equal(t, 0.0, cfg.VisMin)
	assert.Equal(t, 0.5, cfg.VisMax)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.FilenameWithDate)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.MirrorEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BUFFER_DEG", "0.05")
	t.Setenv("WORKERS", "10")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("FILENAME_WITH_DATE", "true")
	t.Setenv("OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.BufferDeg)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.FilenameWithDate)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric buffer", "BUFFER_DEG", "wide"},
		{"negative buffer", "BUFFER_DEG", "-0.02"},
		{"zero workers", "WORKERS", "0"},
		{"non-numeric workers", "WORKERS", "many"},
		{"bad timeout", "HTTP_TIMEOUT", "soon"},
		{"negative timeout", "HTTP_TIMEOUT", "-5s"},
		{"vis range inverted", "VIS_MAX", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MirrorRequiresCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	_, err := Load()
	var wantErr *ErrMissingRequiredEnvVar
	require.ErrorAs(t, err, &wantErr)
	assert.Equal(t, "MINIO_ACCESS_KEY", wantErr.Name)

	t.Setenv("MINIO_ACCESS_KEY", "minio")
	t.Setenv("MINIO_SECRET_KEY", "minio123")
	t.Setenv("MINIO_BUCKET", "fire-thumbs")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.MirrorEnabled())
	assert.False(t, cfg.MinIOUseSSL)
}
