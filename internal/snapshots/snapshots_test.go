package snapshots

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
	"lineup-service/internal/rules"
)

func builtState(t *testing.T) *lineup.CompositionState {
	t.Helper()

	state := lineup.New(time.Date(2025, time.March, 14, 17, 30, 0, 0, time.UTC))
	state.MatchInfo.Opponent = "Vikings HK"
	state.MatchInfo.Date = "2025-03-14"
	state.MatchInfo.Venue = "Nordhallen"

	keeper := players.Player{FamilyName: "Berg", GivenName: "Anna", Position: players.Goalkeeper}
	pivot := players.Player{FamilyName: "Dahl", GivenName: "Erik", Position: players.Pivot}
	coach := players.Player{FamilyName: "Iversen", GivenName: "Kari", Position: players.Coach}
	sub := players.Player{FamilyName: "Lund", GivenName: "Mats", Position: players.LeftWing}

	rules.AssignMajor(state, players.Goalkeeper, &keeper)
	rules.AssignMajor(state, players.Pivot, &pivot)
	rules.AssignCoach(state, &coach)
	rules.AssignSubstitute(state, 2, &sub)

	state.EnsureResult().SetScore(24, 22)
	state.EnsureResult().AddHighlight("Dahl, Erik")
	return state
}

func TestExportImportRoundTrip(t *testing.T) {
	state := builtState(t)

	data, err := Export(state, time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	got, err := Import(data, ImportAll, lineup.New(time.Now()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if !reflect.DeepEqual(got, state) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, state)
	}
}

func TestExportDocumentShape(t *testing.T) {
	state := builtState(t)

	data, err := Export(state, time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"version", "savedAt", "teamComposition"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("expected document key %q", key)
		}
	}

	var version string
	if err := json.Unmarshal(doc["version"], &version); err != nil || version != DocumentVersion {
		t.Fatalf("unexpected version %q (err %v)", version, err)
	}
}

func TestImportCompositionOnlyPreservesMatchInfo(t *testing.T) {
	exported := builtState(t)
	data, err := Export(exported, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	current := lineup.New(time.Now())
	current.MatchInfo.Opponent = "Fjord IL"
	current.MatchInfo.MeetingPoint = "Club house"
	current.EnsureResult().SetScore(10, 10)

	got, err := Import(data, ImportCompositionOnly, current)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if got.MatchInfo.Opponent != "Fjord IL" {
		t.Fatalf("expected match info preserved, got opponent %q", got.MatchInfo.Opponent)
	}
	if got.Result.HomeScore != 10 {
		t.Fatalf("expected current result preserved, got %d", got.Result.HomeScore)
	}
	if len(got.MajorPlayers) != 2 {
		t.Fatalf("expected imported assignments, got %d", len(got.MajorPlayers))
	}
	if got.Coach == nil || got.Coach.FamilyName != "Iversen" {
		t.Fatalf("expected imported coach, got %+v", got.Coach)
	}
	if got.Summary.TotalPlayers != 4 {
		t.Fatalf("expected recounted summary, got %d", got.Summary.TotalPlayers)
	}
}

func TestImportRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"no teamComposition", `{"version":"1.0","savedAt":"2025-03-15T09:00:00Z"}`},
		{"no matchInfo", `{"version":"1.0","teamComposition":{"summary":{}}}`},
		{"no summary", `{"version":"1.0","teamComposition":{"matchInfo":{}}}`},
		{"not json", `lineup csv maybe`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := builtState(t)
			before := current.Clone()

			if _, err := Import([]byte(tc.doc), ImportAll, current); err == nil {
				t.Fatalf("expected error")
			} else if _, ok := AsFormatError(err); !ok {
				t.Fatalf("expected FormatError, got %T", err)
			}

			if !reflect.DeepEqual(current, before) {
				t.Fatalf("failed import mutated current state")
			}
		})
	}
}

func TestImportNeverMutatesCurrent(t *testing.T) {
	exported := builtState(t)
	data, err := Export(exported, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	current := lineup.New(time.Now())
	current.MatchInfo.Opponent = "Fjord IL"
	before := current.Clone()

	if _, err := Import(data, ImportAll, current); err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(current, before) {
		t.Fatalf("import mutated the current state")
	}
}

func TestSuggestedFilename(t *testing.T) {
	state := lineup.New(time.Now())
	state.MatchInfo.Opponent = "Vikings HK"
	state.MatchInfo.Date = "2025-03-14"
	if got := SuggestedFilename(state); got != "lineup-vikings-hk-2025-03-14.json" {
		t.Fatalf("unexpected filename %q", got)
	}

	blank := lineup.New(time.Now())
	if got := SuggestedFilename(blank); got != "lineup.json" {
		t.Fatalf("unexpected fallback filename %q", got)
	}
}

func TestParseImportMode(t *testing.T) {
	if got := ParseImportMode("compositionOnly"); got != ImportCompositionOnly {
		t.Fatalf("unexpected mode %q", got)
	}
	if got := ParseImportMode("all"); got != ImportAll {
		t.Fatalf("unexpected mode %q", got)
	}
	if got := ParseImportMode(""); got != ImportAll {
		t.Fatalf("expected default mode, got %q", got)
	}
}
