package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/metrics"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SnapshotStore persists one lineup snapshot per team in SQLite. Snapshots
// older than the retention window are treated as absent and removed by the
// sweeper.
type SnapshotStore struct {
	db        *sql.DB
	retention time.Duration
	recorder  *metrics.Recorder
	now       func() time.Time
}

// SnapshotRecord is a stored composition together with its save timestamp.
type SnapshotRecord struct {
	TeamID  string
	State   *lineup.CompositionState
	SavedAt time.Time
}

// OpenSnapshotStore opens (creating if needed) the snapshot database at path.
func OpenSnapshotStore(path string, retentionDays int, recorder *metrics.Recorder) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, &PersistenceError{Op: "open", Err: err}
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, &PersistenceError{Op: "open", Err: err}
		}
	}

	s := &SnapshotStore{
		db:        db,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		recorder:  recorder,
		now:       time.Now,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SnapshotStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS lineup_snapshots (
			team_id  TEXT PRIMARY KEY,
			payload  TEXT NOT NULL,
			saved_at INTEGER NOT NULL
		)`)
	if err != nil {
		return &PersistenceError{Op: "migrate", Err: err}
	}
	return nil
}

// Save upserts the snapshot for teamID, resetting its retention clock.
func (s *SnapshotStore) Save(ctx context.Context, teamID string, state *lineup.CompositionState) error {
	start := s.now()
	payload, err := encodeState(state)
	if err == nil {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO lineup_snapshots (team_id, payload, saved_at)
			VALUES (?, ?, ?)
			ON CONFLICT(team_id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
			teamID, payload, start.Unix())
	}
	s.recorder.RecordPersistence("save", time.Since(start), err)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Load returns the snapshot for teamID, or (nil, nil) when none exists or the
// stored one has aged past the retention window.
func (s *SnapshotStore) Load(ctx context.Context, teamID string) (*SnapshotRecord, error) {
	start := s.now()
	cutoff := start.Add(-s.retention).Unix()

	var payload string
	var savedAt int64
	err := s.db.QueryRowContext(ctx, `
		SELECT payload, saved_at FROM lineup_snapshots
		WHERE team_id = ? AND saved_at > ?`,
		teamID, cutoff).Scan(&payload, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		s.recorder.RecordPersistence("load", time.Since(start), nil)
		return nil, nil
	}
	if err != nil {
		s.recorder.RecordPersistence("load", time.Since(start), err)
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	state, err := decodeState(payload)
	s.recorder.RecordPersistence("load", time.Since(start), err)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return &SnapshotRecord{TeamID: teamID, State: state, SavedAt: time.Unix(savedAt, 0).UTC()}, nil
}

// Delete removes the snapshot for teamID. Missing rows are not an error.
func (s *SnapshotStore) Delete(ctx context.Context, teamID string) error {
	start := s.now()
	_, err := s.db.ExecContext(ctx, `DELETE FROM lineup_snapshots WHERE team_id = ?`, teamID)
	s.recorder.RecordPersistence("delete", time.Since(start), err)
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

// PurgeExpired removes all snapshots older than the retention window and
// reports how many rows were deleted.
func (s *SnapshotStore) PurgeExpired(ctx context.Context) (int64, error) {
	start := s.now()
	cutoff := start.Add(-s.retention).Unix()

	res, err := s.db.ExecContext(ctx, `DELETE FROM lineup_snapshots WHERE saved_at <= ?`, cutoff)
	s.recorder.RecordPersistence("purge", time.Since(start), err)
	if err != nil {
		return 0, &PersistenceError{Op: "purge", Err: err}
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, &PersistenceError{Op: "purge", Err: err}
	}
	return purged, nil
}

// Close releases the underlying database handle.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
