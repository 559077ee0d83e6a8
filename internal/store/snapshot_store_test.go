package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
)

func openTestStore(t *testing.T, retentionDays int) *SnapshotStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lineups.db")
	s, err := OpenSnapshotStore(path, retentionDays, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState(createdAt time.Time) *lineup.CompositionState {
	state := lineup.New(createdAt)
	state.MatchInfo.Opponent = "Vikings HK"
	state.MajorPlayers = append(state.MajorPlayers, lineup.Assignment{
		Position: players.Goalkeeper,
		Player:   players.Player{FamilyName: "Berg", GivenName: "Anna", Position: players.Goalkeeper},
	})
	state.Recount()
	return state
}

func TestSnapshotStoreSaveAndLoad(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	created := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, "demo", sampleState(created)); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected snapshot, got none")
	}
	if rec.State.MatchInfo.Opponent != "Vikings HK" {
		t.Fatalf("unexpected opponent %q", rec.State.MatchInfo.Opponent)
	}
	if len(rec.State.MajorPlayers) != 1 {
		t.Fatalf("expected 1 major player, got %d", len(rec.State.MajorPlayers))
	}
	if rec.State.Summary.TotalPlayers != 1 {
		t.Fatalf("expected summary recount, got %d total", rec.State.Summary.TotalPlayers)
	}
}

func TestSnapshotStoreLoadMissing(t *testing.T) {
	s := openTestStore(t, 30)

	rec, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected no snapshot for unknown team")
	}
}

func TestSnapshotStoreSaveReplaces(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	created := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, "demo", sampleState(created)); err != nil {
		t.Fatalf("first save: %v", err)
	}

	updated := sampleState(created)
	updated.MatchInfo.Opponent = "Fjord IL"
	if err := s.Save(ctx, "demo", updated); err != nil {
		t.Fatalf("second save: %v", err)
	}

	rec, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.State.MatchInfo.Opponent != "Fjord IL" {
		t.Fatalf("expected replaced snapshot, got %q", rec.State.MatchInfo.Opponent)
	}
}

func TestSnapshotStoreExpiry(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.Save(ctx, "demo", sampleState(base)); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Still inside the window a day short of 30.
	s.now = func() time.Time { return base.Add(29 * 24 * time.Hour) }
	rec, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load within window: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected snapshot inside retention window")
	}

	s.now = func() time.Time { return base.Add(31 * 24 * time.Hour) }
	rec, err = s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load past window: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected expired snapshot to be treated as absent")
	}
}

func TestSnapshotStoreSaveResetsRetention(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.Save(ctx, "demo", sampleState(base)); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Re-save 20 days later; the clock restarts from there.
	s.now = func() time.Time { return base.Add(20 * 24 * time.Hour) }
	if err := s.Save(ctx, "demo", sampleState(base)); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	s.now = func() time.Time { return base.Add(45 * 24 * time.Hour) }
	rec, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected snapshot to survive after retention reset")
	}
}

func TestSnapshotStorePurgeExpired(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	if err := s.Save(ctx, "old", sampleState(base)); err != nil {
		t.Fatalf("save old: %v", err)
	}

	s.now = func() time.Time { return base.Add(20 * 24 * time.Hour) }
	if err := s.Save(ctx, "fresh", sampleState(base)); err != nil {
		t.Fatalf("save fresh: %v", err)
	}

	s.now = func() time.Time { return base.Add(35 * 24 * time.Hour) }
	purged, err := s.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged snapshot, got %d", purged)
	}

	rec, err := s.Load(ctx, "fresh")
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected fresh snapshot to survive purge")
	}
}

func TestSnapshotStoreDelete(t *testing.T) {
	s := openTestStore(t, 30)
	ctx := context.Background()

	created := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	if err := s.Save(ctx, "demo", sampleState(created)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "demo"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	rec, err := s.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected snapshot gone after delete")
	}

	// Deleting a missing row is a no-op.
	if err := s.Delete(ctx, "demo"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
