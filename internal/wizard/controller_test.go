package wizard

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
	"lineup-service/internal/projection"
	"lineup-service/internal/rules"
	"lineup-service/internal/snapshots"
)

type recordingSaver struct {
	calls int
	err   error
	last  *lineup.CompositionState
}

func (s *recordingSaver) Save(_ context.Context, _ string, state *lineup.CompositionState) error {
	s.calls++
	s.last = state.Clone()
	return s.err
}

func testRoster() []players.Player {
	roster := []players.Player{
		{FamilyName: "Berg", GivenName: "Anna", Position: players.Goalkeeper},
		{FamilyName: "Dahl", GivenName: "Erik", Position: players.LeftWing},
		{FamilyName: "Lund", GivenName: "Mats", Position: players.LeftBack},
		{FamilyName: "Moen", GivenName: "Ida", Position: players.CentreBack},
		{FamilyName: "Nilsen", GivenName: "Ola", Position: players.RightBack},
		{FamilyName: "Solberg", GivenName: "Eva", Position: players.RightWing},
		{FamilyName: "Vik", GivenName: "Jon", Position: players.Pivot},
		{FamilyName: "Iversen", GivenName: "Kari", Position: players.Coach},
		{FamilyName: "Aas", GivenName: "Per", Position: players.Pivot, Secondary: []players.Position{players.CentreBack}},
	}
	return roster
}

func fillLineup(t *testing.T, c *Controller) {
	t.Helper()

	ctx := context.Background()
	roster := testRoster()
	for i, pos := range players.TacticalPositions {
		c.AssignMajor(ctx, pos, roster[i].ID())
	}
	c.AssignCoach(ctx, roster[7].ID())
}

func TestNextGatedByCompleteLineup(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	// Match info forward is unconditional.
	step, err := c.Next(ctx)
	if err != nil || step != StepTeamSelection {
		t.Fatalf("expected team selection, got %v (err %v)", step, err)
	}

	// Incomplete lineup blocks the forward transition.
	if _, err := c.Next(ctx); err == nil {
		t.Fatalf("expected validation error on incomplete lineup")
	} else if _, ok := rules.AsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if c.Step() != StepTeamSelection {
		t.Fatalf("rejected transition moved step to %v", c.Step())
	}

	fillLineup(t, c)

	step, err = c.Next(ctx)
	if err != nil || step != StepSummary {
		t.Fatalf("expected summary, got %v (err %v)", step, err)
	}
	step, err = c.Next(ctx)
	if err != nil || step != StepMatchResults {
		t.Fatalf("expected match results, got %v (err %v)", step, err)
	}

	// Advancing past the end stays put.
	step, err = c.Next(ctx)
	if err != nil || step != StepMatchResults {
		t.Fatalf("expected to stay on match results, got %v (err %v)", step, err)
	}
}

func TestBackAlwaysAllowed(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	c.Next(ctx)
	if got := c.Back(); got != StepMatchInfo {
		t.Fatalf("expected match info, got %v", got)
	}
	// Retreating past the start stays put.
	if got := c.Back(); got != StepMatchInfo {
		t.Fatalf("expected match info, got %v", got)
	}
}

func TestMutationsPersistBestEffort(t *testing.T) {
	saver := &recordingSaver{}
	c := New("demo", testRoster(), saver, nil, nil)
	ctx := context.Background()

	c.SetMatchInfo(ctx, lineup.MatchInfo{Opponent: "Vikings HK"})
	c.SetScore(ctx, 24, 22)
	c.AddHighlight(ctx, "fast break goal")

	if saver.calls != 3 {
		t.Fatalf("expected 3 persistence writes, got %d", saver.calls)
	}
	if saver.last.MatchInfo.Opponent != "Vikings HK" {
		t.Fatalf("unexpected persisted opponent %q", saver.last.MatchInfo.Opponent)
	}

	// Save failures are swallowed; the mutation still lands.
	saver.err = errors.New("disk full")
	c.SetScore(ctx, 25, 22)
	if got := c.Snapshot().Result.HomeScore; got != 25 {
		t.Fatalf("expected mutation despite save failure, got score %d", got)
	}
}

func TestTransitionsDoNotPersist(t *testing.T) {
	saver := &recordingSaver{}
	c := New("demo", testRoster(), saver, nil, nil)
	ctx := context.Background()

	c.Next(ctx)
	c.Back()
	if saver.calls != 0 {
		t.Fatalf("expected no persistence writes for transitions, got %d", saver.calls)
	}
}

func TestAssignMajorByID(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()
	keeperID := testRoster()[0].ID()

	c.AssignMajor(ctx, players.Goalkeeper, keeperID)
	if got, ok := c.Snapshot().MajorAt(players.Goalkeeper); !ok || got.FamilyName != "Berg" {
		t.Fatalf("expected Berg in goal, got %+v (ok %v)", got, ok)
	}

	// Unknown IDs are ignored.
	c.AssignMajor(ctx, players.Goalkeeper, "Ghost|Gone|")
	if got, ok := c.Snapshot().MajorAt(players.Goalkeeper); !ok || got.FamilyName != "Berg" {
		t.Fatalf("unknown id should not change the slot, got %+v (ok %v)", got, ok)
	}

	// Empty ID clears.
	c.AssignMajor(ctx, players.Goalkeeper, "")
	if _, ok := c.Snapshot().MajorAt(players.Goalkeeper); ok {
		t.Fatalf("expected cleared slot")
	}
}

func TestEligibleShrinksAsSlotsFill(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()
	roster := testRoster()

	before := c.Eligible(players.Pivot)
	c.AssignMajor(ctx, players.Goalkeeper, roster[0].ID())
	after := c.Eligible(players.Pivot)

	if len(after.Exact)+len(after.Other) >= len(before.Exact)+len(before.Other) {
		t.Fatalf("expected candidate pool to shrink: before %d, after %d",
			len(before.Exact)+len(before.Other), len(after.Exact)+len(after.Other))
	}
}

func TestClearMatchDataKeepsAssignments(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	c.SetMatchInfo(ctx, lineup.MatchInfo{Opponent: "Vikings HK", Venue: "Nordhallen"})
	fillLineup(t, c)

	c.ClearMatchData(ctx)

	snap := c.Snapshot()
	if snap.MatchInfo.Opponent != lineup.TBD {
		t.Fatalf("expected cleared opponent, got %q", snap.MatchInfo.Opponent)
	}
	if len(snap.MajorPlayers) != 7 || snap.Coach == nil {
		t.Fatalf("expected assignments preserved, got %d majors coach=%v", len(snap.MajorPlayers), snap.Coach)
	}
}

func TestClearSavedDataKeepsMatchInfo(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	c.SetMatchInfo(ctx, lineup.MatchInfo{Opponent: "Vikings HK"})
	fillLineup(t, c)

	c.ClearSavedData(ctx)

	snap := c.Snapshot()
	if snap.MatchInfo.Opponent != "Vikings HK" {
		t.Fatalf("expected match info preserved, got %q", snap.MatchInfo.Opponent)
	}
	if len(snap.MajorPlayers) != 0 || snap.Coach != nil || len(snap.Substitutes) != 0 {
		t.Fatalf("expected assignments cleared, got %+v", snap)
	}
	if snap.Summary.TotalPlayers != 0 {
		t.Fatalf("expected recounted summary, got %d", snap.Summary.TotalPlayers)
	}
}

func TestResultCreatedOnFirstMutation(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	if c.Snapshot().Result != nil {
		t.Fatal("expected no result before any result mutation")
	}

	c.SetScore(ctx, 2, 1)

	res := c.Snapshot().Result
	if res == nil {
		t.Fatal("expected result after score edit")
	}
	if res.Status != lineup.StatusVictory {
		t.Fatalf("expected derived victory, got %v", res.Status)
	}

	c2 := New("demo", testRoster(), nil, nil, nil)
	c2.AddHighlight(ctx, "fast break goal")
	if res := c2.Snapshot().Result; res == nil || len(res.Highlights) != 1 {
		t.Fatalf("expected highlight on fresh session, got %+v", res)
	}
}

func TestStickyStatusThroughController(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	c.SetScore(ctx, 20, 20)
	c.SetStatus(ctx, lineup.StatusVictory)
	c.SetScore(ctx, 20, 25)

	if got := c.Snapshot().Result.Status; got != lineup.StatusVictory {
		t.Fatalf("expected pinned status to survive score edits, got %v", got)
	}

	c.SetStatus(ctx, lineup.StatusPending)
	c.SetScore(ctx, 20, 25)
	if got := c.Snapshot().Result.Status; got != lineup.StatusDefeat {
		t.Fatalf("expected derivation to resume, got %v", got)
	}
}

func TestExportImportThroughController(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	c.SetMatchInfo(ctx, lineup.MatchInfo{Opponent: "Vikings HK", Date: "2025-03-14"})
	fillLineup(t, c)
	before := c.Snapshot()

	data, filename, err := c.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(filename, "lineup-vikings-hk") {
		t.Fatalf("unexpected filename %q", filename)
	}

	other := New("demo", testRoster(), nil, nil, nil)
	if err := other.Import(ctx, data, snapshots.ImportAll); err != nil {
		t.Fatalf("import: %v", err)
	}
	got := other.Snapshot()
	got.CreatedAt = before.CreatedAt
	if !reflect.DeepEqual(got, before) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, before)
	}
}

func TestImportFailureLeavesStateUntouched(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()
	fillLineup(t, c)
	before := c.Snapshot()

	err := c.Import(ctx, []byte(`{"version":"1.0"}`), snapshots.ImportAll)
	if err == nil {
		t.Fatalf("expected format error")
	}
	if _, ok := snapshots.AsFormatError(err); !ok {
		t.Fatalf("expected FormatError, got %T", err)
	}
	if !reflect.DeepEqual(c.Snapshot(), before) {
		t.Fatalf("failed import changed the composition")
	}
}

func TestObserverSeesEveryMutation(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()

	var published int
	var lastOpponent string
	c.SetObserver(func(s projection.TeamCompositionSummary) {
		published++
		lastOpponent = s.MatchInfo.Opponent
	})

	c.SetMatchInfo(ctx, lineup.MatchInfo{Opponent: "Fjord IL"})
	c.SetScore(ctx, 1, 0)

	if published != 2 {
		t.Fatalf("expected 2 projections, got %d", published)
	}
	if lastOpponent != "Fjord IL" {
		t.Fatalf("unexpected projected opponent %q", lastOpponent)
	}
}

func TestRestoreResetsFlow(t *testing.T) {
	c := New("demo", testRoster(), nil, nil, nil)
	ctx := context.Background()
	c.Next(ctx)

	restored := lineup.New(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	restored.MatchInfo.Opponent = "Nordlys HB"
	c.Restore(restored)

	if c.Step() != StepMatchInfo {
		t.Fatalf("expected flow restart, got %v", c.Step())
	}
	if got := c.Snapshot().MatchInfo.Opponent; got != "Nordlys HB" {
		t.Fatalf("unexpected restored opponent %q", got)
	}

	// The controller owns a copy, not the caller's value.
	restored.MatchInfo.Opponent = "Mutated"
	if got := c.Snapshot().MatchInfo.Opponent; got != "Nordlys HB" {
		t.Fatalf("restore aliased caller state, got %q", got)
	}
}
