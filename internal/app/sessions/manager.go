package sessions

import (
	"context"
	"log/slog"
	"sync"

	"lineup-service/internal/app/roster"
	domainlineup "lineup-service/internal/domain/lineup"
	"lineup-service/internal/logging"
	"lineup-service/internal/metrics"
	"lineup-service/internal/store"
	"lineup-service/internal/wizard"
)

// SnapshotStore is the slice of the persistence layer a session needs.
type SnapshotStore interface {
	Save(ctx context.Context, teamID string, state *domainlineup.CompositionState) error
	Load(ctx context.Context, teamID string) (*store.SnapshotRecord, error)
}

// Manager tracks the single active editing session per team. Opening a team
// that already has a session returns the existing controller.
type Manager struct {
	mu       sync.Mutex
	active   map[string]*wizard.Controller
	rosters  *roster.Service
	store    SnapshotStore
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewManager constructs an empty session manager.
func NewManager(rosters *roster.Service, snapshots SnapshotStore, logger *slog.Logger, recorder *metrics.Recorder) *Manager {
	return &Manager{
		active:   make(map[string]*wizard.Controller),
		rosters:  rosters,
		store:    snapshots,
		logger:   logger,
		recorder: recorder,
	}
}

// Open starts (or resumes) the editing session for teamID: the roster is
// fetched fresh and a stored snapshot, when present, replaces the empty
// composition. Unknown teams propagate the provider's NotFoundError.
func (m *Manager) Open(ctx context.Context, teamID string) (*wizard.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ctrl, ok := m.active[teamID]; ok {
		return ctrl, nil
	}

	players, err := m.rosters.Players(ctx, teamID)
	if err != nil {
		return nil, err
	}

	ctrl := wizard.New(teamID, players, m.store, m.logger, m.recorder)

	rec, err := m.store.Load(ctx, teamID)
	if err != nil {
		// Snapshot load failures are recoverable; the session starts empty.
		logging.Warn(logging.FromContext(ctx, m.logger), "snapshot load failed",
			slog.String(logging.FieldTeamID, teamID),
			slog.String(logging.FieldError, err.Error()))
	} else if rec != nil {
		ctrl.Restore(rec.State)
	}

	m.active[teamID] = ctrl
	logging.Info(logging.FromContext(ctx, m.logger), "session opened",
		slog.String(logging.FieldTeamID, teamID),
		slog.Bool("restored", rec != nil))
	return ctrl, nil
}

// Get returns the active controller for teamID, if any.
func (m *Manager) Get(teamID string) (*wizard.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl, ok := m.active[teamID]
	return ctrl, ok
}

// Close discards the in-memory session. The stored snapshot survives for a
// later Open.
func (m *Manager) Close(teamID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, teamID)
}
