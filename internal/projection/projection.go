// Package projection derives the read-only summary view handed to
// rendering collaborators. The projection is a deep copy: consumers can
// never reach the mutable composition state through it.
package projection

import (
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
)

// Layout selects how a rendering collaborator arranges the summary.
type Layout string

const (
	LayoutGrid     Layout = "grid"
	LayoutStack    Layout = "stack"
	LayoutTactical Layout = "tactical"
)

// ParseLayout converts a raw string into a Layout.
func ParseLayout(raw string) (Layout, bool) {
	switch Layout(raw) {
	case LayoutGrid, LayoutStack, LayoutTactical:
		return Layout(raw), true
	}
	return "", false
}

// PositionedPlayer is a major assignment labeled for rendering.
type PositionedPlayer struct {
	Position players.Position `json:"position"`
	Label    string           `json:"label"`
	Player   players.Player   `json:"player"`
}

// TeamCompositionSummary is the sole contract surface between the engine
// and rendering collaborators.
type TeamCompositionSummary struct {
	MatchInfo    lineup.MatchInfo     `json:"matchInfo"`
	MajorPlayers []PositionedPlayer   `json:"majorPlayers"`
	Coach        *players.Player      `json:"coach,omitempty"`
	Substitutes  []*players.Player    `json:"substitutes"`
	Counts       lineup.SummaryCounts `json:"counts"`
	Result       *lineup.MatchResult  `json:"matchResult,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// Project derives the summary from the state. Majors are emitted in the
// canonical tactical order regardless of assignment order, counts are
// recomputed, and the result passes through unchanged (nil if absent).
func Project(state *lineup.CompositionState) TeamCompositionSummary {
	cp := state.Clone()
	cp.Recount()

	majors := make([]PositionedPlayer, 0, len(cp.MajorPlayers))
	for _, pos := range players.TacticalPositions {
		if p, ok := cp.MajorAt(pos); ok {
			majors = append(majors, PositionedPlayer{Position: pos, Label: pos.Label(), Player: p})
		}
	}

	return TeamCompositionSummary{
		MatchInfo:    cp.MatchInfo,
		MajorPlayers: majors,
		Coach:        cp.Coach,
		Substitutes:  cp.Substitutes,
		Counts:       cp.Summary,
		Result:       cp.Result,
		CreatedAt:    cp.CreatedAt,
	}
}
