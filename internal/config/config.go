package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Session backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration
type Config struct {
	DataDir         string  `env:"DATA_DIR" envDefault:"data"`
	SessionBackend  string  `env:"SESSION_BACKEND" envDefault:"file"`
	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	LogFile         string  `env:"LOG_FILE"`
	APILatencyScale float64 `env:"API_LATENCY_SCALE" envDefault:"1"`
	WhatsAppEnabled bool    `env:"WHATSAPP_ENABLED" envDefault:"false"`
	WhatsAppDataDir string  `env:"WHATSAPP_DATA_DIR"`
}

// LoadConfig loads configuration from an optional .env file, then the environment
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.APILatencyScale < 0 {
		return fmt.Errorf("API_LATENCY_SCALE must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured log level
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// SessionPath returns where the session store keeps its data for file-based backends
func (c *Config) SessionPath() string {
	switch c.SessionBackend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "session.db")
	default:
		return filepath.Join(c.DataDir, "session.json")
	}
}

// WhatsAppDir returns the WhatsApp device store directory
func (c *Config) WhatsAppDir() string {
	if c.WhatsAppDataDir != "" {
		return c.WhatsAppDataDir
	}
	return filepath.Join(c.DataDir, "whatsapp")
}
