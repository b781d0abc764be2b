package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Narrator providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderVenice    = "venice"
)

// Storage backends. BackendNone plays offline.
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNone   = "none"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level
	// LogFile receives logs while the terminal UI owns stdout.
	LogFile string `env:"LOG_FILE" envDefault:"quest-engine.log"`

	NarratorProvider string        `env:"NARRATOR_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	AnthropicAPIKey  string        `env:"ANTHROPIC_API_KEY"`
	VeniceAPIKey     string        `env:"VENICE_API_KEY"`
	ModelName        string        `env:"MODEL_NAME"`
	NarratorTimeout  time.Duration `env:"NARRATOR_TIMEOUT" envDefault:"30s"`
	TurnCooldown     time.Duration `env:"TURN_COOLDOWN" envDefault:"4s"`
	ContentRating    string        `env:"CONTENT_RATING" envDefault:"PG13"`
	ContentFilter    bool          `env:"CONTENT_FILTER" envDefault:"false"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	RedisURL       string `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"quest-engine.db"`
	SaveDir        string `env:"SAVE_DIR" envDefault:"saves"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	cfg.NarratorProvider = strings.ToLower(strings.TrimSpace(cfg.NarratorProvider))
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.NarratorProvider {
	case ProviderGemini, ProviderAnthropic, ProviderVenice:
	default:
		return fmt.Errorf("unknown NARRATOR_PROVIDER %q", c.NarratorProvider)
	}
	switch c.StorageBackend {
	case BackendRedis, BackendSQLite, BackendFile, BackendMemory, BackendNone:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.TurnCooldown < 0 {
		return fmt.Errorf("TURN_COOLDOWN must not be negative")
	}
	if c.NarratorTimeout <= 0 {
		return fmt.Errorf("NARRATOR_TIMEOUT must be positive")
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (c *Config) APIKey() string {
	switch c.NarratorProvider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderVenice:
		return c.VeniceAPIKey
	default:
		return c.GeminiAPIKey
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
