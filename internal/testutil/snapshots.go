package testutil

import (
	"context"
	"sync"
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/store"
)

// MemorySnapshots is an in-memory stand-in for the SQLite snapshot store.
type MemorySnapshots struct {
	mu      sync.Mutex
	saved   map[string]*lineup.CompositionState
	SaveErr error
	LoadErr error
}

// NewMemorySnapshots constructs an empty MemorySnapshots.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{saved: make(map[string]*lineup.CompositionState)}
}

func (m *MemorySnapshots) Save(_ context.Context, teamID string, state *lineup.CompositionState) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[teamID] = state.Clone()
	return nil
}

func (m *MemorySnapshots) Load(_ context.Context, teamID string) (*store.SnapshotRecord, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.saved[teamID]
	if !ok {
		return nil, nil
	}
	return &store.SnapshotRecord{TeamID: teamID, State: state.Clone(), SavedAt: time.Now()}, nil
}

// Saved returns the stored snapshot for teamID, if any.
func (m *MemorySnapshots) Saved(teamID string) (*lineup.CompositionState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.saved[teamID]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}
