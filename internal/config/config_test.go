package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.SessionBackend)
	assert.Equal(t, 1.0, cfg.APILatencyScale)
	assert.False(t, cfg.WhatsAppEnabled)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, filepath.Join("data", "session.json"), cfg.SessionPath())
	assert.Equal(t, filepath.Join("data", "whatsapp"), cfg.WhatsAppDir())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/wedding")
	t.Setenv("SESSION_BACKEND", "sqlite")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("API_LATENCY_SCALE", "0")
	t.Setenv("WHATSAPP_ENABLED", "true")
	t.Setenv("WHATSAPP_DATA_DIR", "/var/lib/wa")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/wedding/session.db", cfg.SessionPath())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Zero(t, cfg.APILatencyScale)
	assert.True(t, cfg.WhatsAppEnabled)
	assert.Equal(t, "/var/lib/wa", cfg.WhatsAppDir())
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SESSION_BACKEND=memory\nDATA_DIR=fromfile\n"), 0600))
	t.Setenv("DATA_DIR", "fromenv")
	// godotenv does not override variables that are already set
	t.Cleanup(func() { os.Unsetenv("SESSION_BACKEND") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, "fromenv", cfg.DataDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"SESSION_BACKEND":   "redis",
		"LOG_LEVEL":         "loud",
		"API_LATENCY_SCALE": "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
