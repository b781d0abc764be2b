package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NarratorProvider != ProviderGemini {
		t.Errorf("NarratorProvider = %q, want %q", cfg.NarratorProvider, ProviderGemini)
	}
	if cfg.StorageBackend != BackendFile {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendFile)
	}
	if cfg.TurnCooldown != 4*time.Second {
		t.Errorf("TurnCooldown = %v, want 4s", cfg.TurnCooldown)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("NARRATOR_PROVIDER", " Anthropic ")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("TURN_COOLDOWN", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CONTENT_FILTER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NarratorProvider != ProviderAnthropic {
		t.Errorf("NarratorProvider = %q", cfg.NarratorProvider)
	}
	if cfg.APIKey() != "sk-test" {
		t.Errorf("APIKey() = %q, want sk-test", cfg.APIKey())
	}
	if cfg.TurnCooldown != 250*time.Millisecond {
		t.Errorf("TurnCooldown = %v", cfg.TurnCooldown)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if !cfg.ContentFilter {
		t.Error("ContentFilter = false, want true")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"provider", "NARRATOR_PROVIDER", "parrot"},
		{"backend", "STORAGE_BACKEND", "floppy"},
		{"cooldown", "TURN_COOLDOWN", "soon"},
		{"timeout", "NARRATOR_TIMEOUT", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
