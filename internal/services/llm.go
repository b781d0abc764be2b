package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/quest-engine/internal/config"
	"github.com/jwebster45206/quest-engine/pkg/narrator"
)

// NewNarrator builds the narrator selected by cfg. A missing API key is not
// an error: the narrator is returned and reports narrator.ErrNotConfigured
// on every turn, so the game can still be browsed. Callers should Close the
// result when it implements io.Closer.
func NewNarrator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (narrator.Narrator, error) {
	switch cfg.NarratorProvider {
	case config.ProviderGemini:
		g, err := NewGeminiNarrator(ctx, cfg.GeminiAPIKey, cfg.ModelName, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderAnthropic:
		return NewAnthropicNarrator(cfg.AnthropicAPIKey, cfg.ModelName, logger), nil
	case config.ProviderVenice:
		return NewVeniceNarrator(cfg.VeniceAPIKey, cfg.ModelName, logger), nil
	default:
		return nil, fmt.Errorf("unknown narrator provider %q", cfg.NarratorProvider)
	}
}
