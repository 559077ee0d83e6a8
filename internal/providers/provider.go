package providers

import (
	"context"

	"lineup-service/internal/domain/players"
)

// Opponent is a known opposing club.
type Opponent struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// RosterProvider exposes the players available to a team. Rosters are
// immutable once loaded; the engine references players by identity, it
// never mutates them.
type RosterProvider interface {
	// FetchPlayers returns the ordered roster for teamID, coaches included.
	// Unknown team IDs yield a NotFoundError.
	FetchPlayers(ctx context.Context, teamID string) ([]players.Player, error)
}

// OpponentProvider lists known opponents and their logos.
type OpponentProvider interface {
	FetchOpponents(ctx context.Context) ([]Opponent, error)
	// TeamLogo resolves a club name to a logo URL, if one is known.
	TeamLogo(name string) (string, bool)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	RosterProvider
	OpponentProvider
}
