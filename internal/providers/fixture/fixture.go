// Package fixture provides a static roster source useful for local
// development and tests, optionally seeded from a JSON file produced by
// the spreadsheet conversion tooling.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lineup-service/internal/domain/players"
	"lineup-service/internal/providers"
)

// DefaultTeamID is the team served by the built-in roster.
const DefaultTeamID = "demo"

// Provider serves deterministic rosters keyed by team ID.
type Provider struct {
	rosters   map[string][]players.Player
	opponents []providers.Opponent
	logos     map[string]string
}

// New creates a fixture provider with the built-in demo roster.
func New() *Provider {
	return &Provider{
		rosters: map[string][]players.Player{
			DefaultTeamID: demoRoster(),
		},
		opponents: []providers.Opponent{
			{Name: "Vikings HK", ShortName: "VIK"},
			{Name: "Fjord IL", ShortName: "FJO"},
			{Name: "Nordlys HB", ShortName: "NOR"},
		},
		logos: map[string]string{
			"vikings hk": "https://fixtures.invalid/logos/vik.png",
			"fjord il":   "https://fixtures.invalid/logos/fjo.png",
		},
	}
}

// fileDocument is the on-disk roster shape: team id plus player records.
type fileDocument struct {
	Team    string           `json:"team"`
	Players []players.Player `json:"players"`
}

// NewFromFile creates a fixture provider seeded from a roster JSON file.
func NewFromFile(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster fixture: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing roster fixture: %w", err)
	}
	if doc.Team == "" {
		doc.Team = DefaultTeamID
	}

	p := New()
	p.rosters[doc.Team] = doc.Players
	return p, nil
}

// FetchPlayers returns the roster for teamID or a NotFoundError.
func (p *Provider) FetchPlayers(ctx context.Context, teamID string) ([]players.Player, error) {
	_ = ctx
	roster, ok := p.rosters[teamID]
	if !ok {
		return nil, &providers.NotFoundError{TeamID: teamID}
	}
	return append([]players.Player(nil), roster...), nil
}

// FetchOpponents returns the static opponent directory.
func (p *Provider) FetchOpponents(ctx context.Context) ([]providers.Opponent, error) {
	_ = ctx
	return append([]providers.Opponent(nil), p.opponents...), nil
}

// TeamLogo resolves a club name to a fixture logo URL.
func (p *Provider) TeamLogo(name string) (string, bool) {
	logo, ok := p.logos[strings.ToLower(name)]
	return logo, ok
}

func demoRoster() []players.Player {
	field := func(family, given string, primary players.Position, secondary ...players.Position) players.Player {
		return players.Player{
			FamilyName: family,
			GivenName:  given,
			Position:   primary,
			Secondary:  secondary,
			Skills:     players.Skills{Attack: 6, Defense: 6, Speed: 6, Stamina: 6, Technique: 6, Teamplay: 6},
			Group:      "senior",
		}
	}

	return []players.Player{
		field("Aasen", "Trine", players.Goalkeeper),
		field("Solberg", "Ida", players.Goalkeeper),
		field("Berge", "Maren", players.LeftWing, players.LeftBack),
		field("Carlsen", "Live", players.LeftBack, players.CentreBack),
		field("Dale", "Oda", players.CentreBack, players.RightBack),
		field("Engen", "Frida", players.RightBack),
		field("Fossum", "Nora", players.RightWing, players.LeftWing),
		field("Gran", "Thea", players.Pivot, players.CentreBack),
		field("Haugen", "Silje", players.Pivot),
		field("Lunde", "Emma", players.LeftWing),
		field("Moe", "Sara", players.RightWing),
		field("Iversen", "Kari", players.Coach),
	}
}
