package server

import (
	"fmt"
	"log/slog"
	"strings"

	"lineup-service/internal/config"
	"lineup-service/internal/providers"
	"lineup-service/internal/providers/fixture"
	"lineup-service/internal/providers/rosterapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		if cfg.Roster.FixturePath != "" {
			p, err := fixture.NewFromFile(cfg.Roster.FixturePath)
			if err == nil {
				return p
			}
			if logger != nil {
				logger.Warn("fixture file unreadable, using built-in roster",
					slog.String("path", cfg.Roster.FixturePath),
					slog.Any("err", err))
			}
		}
		return fixture.New()
	case "rosterapi":
		return rosterapi.NewClient(rosterapi.Config{
			BaseURL: cfg.Roster.BaseURL,
			APIKey:  cfg.Roster.APIKey,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.RosterProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
