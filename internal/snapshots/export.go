package snapshots

import (
	"encoding/json"
	"strings"
	"time"

	"lineup-service/internal/domain/lineup"
)

// Export serializes state into a versioned document. The caller decides where
// the bytes go; SuggestedFilename gives a sensible default.
func Export(state *lineup.CompositionState, savedAt time.Time) ([]byte, error) {
	clone := state.Clone()
	clone.Recount()

	doc := Document{
		Version:         DocumentVersion,
		SavedAt:         savedAt.UTC(),
		TeamComposition: clone,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &FormatError{Reason: "encode", Err: err}
	}
	return data, nil
}

// SuggestedFilename builds a download name from the opponent and match date,
// e.g. "lineup-vikings-hk-2025-03-14.json".
func SuggestedFilename(state *lineup.CompositionState) string {
	parts := []string{"lineup"}
	if slug := slugify(state.MatchInfo.Opponent); slug != "" {
		parts = append(parts, slug)
	}
	if slug := slugify(state.MatchInfo.Date); slug != "" {
		parts = append(parts, slug)
	}
	return strings.Join(parts, "-") + ".json"
}

func slugify(raw string) string {
	if raw == "" || raw == lineup.TBD {
		return ""
	}
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
