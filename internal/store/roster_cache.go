package store

import (
	"sync"

	"lineup-service/internal/domain/players"
)

// RosterCache keeps a thread-safe copy of the last fetched roster per team.
type RosterCache struct {
	mu      sync.RWMutex
	rosters map[string][]players.Player
}

// NewRosterCache constructs an empty RosterCache.
func NewRosterCache() *RosterCache {
	return &RosterCache{
		rosters: make(map[string][]players.Player),
	}
}

// Get retrieves a copy of the cached roster for teamID.
func (c *RosterCache) Get(teamID string) ([]players.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	roster, ok := c.rosters[teamID]
	if !ok {
		return nil, false
	}
	result := make([]players.Player, len(roster))
	copy(result, roster)
	return result, true
}

// Set replaces the cached roster for teamID with a new snapshot.
func (c *RosterCache) Set(teamID string, roster []players.Player) {
	copied := make([]players.Player, len(roster))
	copy(copied, roster)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rosters[teamID] = copied
}

// Drop removes the cached roster for teamID.
func (c *RosterCache) Drop(teamID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rosters, teamID)
}
