package roster

import (
	"context"

	"lineup-service/internal/domain/players"
	"lineup-service/internal/providers"
)

// Cache defines the contract for the last-known-good roster per team.
type Cache interface {
	Get(teamID string) ([]players.Player, bool)
	Set(teamID string, roster []players.Player)
}

// Service fetches rosters through a provider, falling back to the cached
// copy when the provider is unavailable.
type Service struct {
	provider providers.RosterProvider
	cache    Cache
}

// NewService constructs a Service with the provided provider and cache.
func NewService(provider providers.RosterProvider, cache Cache) *Service {
	return &Service{provider: provider, cache: cache}
}

// Players returns the roster for teamID. A provider failure falls back to
// the cache; unknown teams propagate the provider's NotFoundError.
func (s *Service) Players(ctx context.Context, teamID string) ([]players.Player, error) {
	roster, err := s.provider.FetchPlayers(ctx, teamID)
	if err != nil {
		if _, notFound := providers.AsNotFoundError(err); notFound {
			return nil, err
		}
		if cached, ok := s.cache.Get(teamID); ok {
			return cached, nil
		}
		return nil, err
	}
	s.cache.Set(teamID, roster)
	return roster, nil
}

// Coaches filters the roster down to coach entries.
func Coaches(roster []players.Player) []players.Player {
	var result []players.Player
	for _, p := range roster {
		if p.IsCoach() {
			result = append(result, p)
		}
	}
	return result
}
