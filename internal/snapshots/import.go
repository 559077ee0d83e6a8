package snapshots

import (
	"encoding/json"

	"lineup-service/internal/domain/lineup"
)

// ImportMode selects how much of an imported document replaces the current
// composition.
type ImportMode string

const (
	// ImportAll replaces the whole composition, match info included.
	ImportAll ImportMode = "all"
	// ImportCompositionOnly replaces assignments, coach and substitutes but
	// keeps the current match info and result.
	ImportCompositionOnly ImportMode = "compositionOnly"
)

// ParseImportMode maps raw input to an ImportMode, defaulting to ImportAll.
func ParseImportMode(raw string) ImportMode {
	if ImportMode(raw) == ImportCompositionOnly {
		return ImportCompositionOnly
	}
	return ImportAll
}

// Import parses an export document and merges it over current according to
// mode. The returned state is always a fresh value; current is never mutated,
// so a failed import leaves the session exactly as it was.
func Import(data []byte, mode ImportMode, current *lineup.CompositionState) (*lineup.CompositionState, error) {
	var raw struct {
		Version         string          `json:"version"`
		TeamComposition json.RawMessage `json:"teamComposition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &FormatError{Reason: "parse", Err: err}
	}
	if len(raw.TeamComposition) == 0 || string(raw.TeamComposition) == "null" {
		return nil, &FormatError{Reason: "missing teamComposition"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw.TeamComposition, &fields); err != nil {
		return nil, &FormatError{Reason: "parse teamComposition", Err: err}
	}
	if _, ok := fields["matchInfo"]; !ok {
		return nil, &FormatError{Reason: "missing matchInfo"}
	}
	if _, ok := fields["summary"]; !ok {
		return nil, &FormatError{Reason: "missing summary"}
	}

	var imported lineup.CompositionState
	if err := json.Unmarshal(raw.TeamComposition, &imported); err != nil {
		return nil, &FormatError{Reason: "decode teamComposition", Err: err}
	}

	var next *lineup.CompositionState
	switch mode {
	case ImportCompositionOnly:
		next = current.Clone()
		next.MajorPlayers = imported.MajorPlayers
		next.Coach = imported.Coach
		next.Substitutes = imported.Substitutes
	default:
		next = imported.Clone()
		next.MatchInfo.Normalize()
	}

	// Imported documents are not trusted to carry consistent counts.
	next.Recount()
	return next, nil
}
