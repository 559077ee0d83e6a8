package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
	"lineup-service/internal/logging"
	"lineup-service/internal/metrics"
	"lineup-service/internal/projection"
	"lineup-service/internal/rules"
	"lineup-service/internal/snapshots"
)

// Saver persists composition snapshots. Save failures are logged and
// swallowed; the in-memory state stays authoritative.
type Saver interface {
	Save(ctx context.Context, teamID string, state *lineup.CompositionState) error
}

// Controller owns the composition for one team's editing session and
// sequences the flow MatchInfo -> TeamSelection -> Summary -> MatchResults.
// All mutations go through the assignment rules; nothing else touches the
// state directly.
type Controller struct {
	mu       sync.Mutex
	teamID   string
	step     Step
	state    *lineup.CompositionState
	roster   []players.Player
	saver    Saver
	logger   *slog.Logger
	recorder *metrics.Recorder
	observer func(projection.TeamCompositionSummary)
	now      func() time.Time
}

// New constructs a Controller with an empty composition for teamID.
func New(teamID string, roster []players.Player, saver Saver, logger *slog.Logger, recorder *metrics.Recorder) *Controller {
	c := &Controller{
		teamID:   teamID,
		step:     StepMatchInfo,
		roster:   roster,
		saver:    saver,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
	c.state = lineup.New(c.now())
	return c
}

// SetObserver registers a callback invoked with a fresh projection after
// every successful mutation. Pass nil to unsubscribe.
func (c *Controller) SetObserver(fn func(projection.TeamCompositionSummary)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// Restore replaces the composition wholesale, typically from a stored
// snapshot. The flow restarts at the first step.
func (c *Controller) Restore(state *lineup.CompositionState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	restored := state.Clone()
	restored.Recount()
	c.state = restored
	c.step = StepMatchInfo
}

// Step reports the current stage.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Next advances one step. Leaving TeamSelection requires a complete lineup;
// an incomplete one rejects the transition with a ValidationError. Advancing
// past the last step is a no-op.
func (c *Controller) Next(ctx context.Context) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step == StepTeamSelection {
		if err := rules.ValidateComplete(c.state); err != nil {
			return c.step, err
		}
	}
	if idx := stepIndex(c.step); idx < len(stepOrder)-1 {
		c.step = stepOrder[idx+1]
	}
	if c.step == StepSummary {
		c.state.Recount()
	}
	logging.Info(logging.FromContext(ctx, c.logger), "wizard step advanced",
		slog.String(logging.FieldTeamID, c.teamID),
		slog.String(logging.FieldStep, string(c.step)))
	return c.step, nil
}

// Back retreats one step. Always allowed; retreating past the first step is
// a no-op.
func (c *Controller) Back() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := stepIndex(c.step); idx > 0 {
		c.step = stepOrder[idx-1]
	}
	return c.step
}

// Eligible computes the candidate pools for a slot from the live roster and
// the current occupancy. Recomputed fresh on every call since each
// assignment shrinks later pools.
func (c *Controller) Eligible(position players.Position) rules.Candidates {
	c.mu.Lock()
	defer c.mu.Unlock()
	return rules.EligibleForPosition(c.state, c.roster, position)
}

// Roster returns a copy of the session roster.
func (c *Controller) Roster() []players.Player {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]players.Player, len(c.roster))
	copy(result, c.roster)
	return result
}

// FindPlayer resolves a roster player by composite identifier.
func (c *Controller) FindPlayer(id string) (players.Player, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findPlayer(id)
}

func (c *Controller) findPlayer(id string) (players.Player, bool) {
	for _, p := range c.roster {
		if p.ID() == id {
			return p, true
		}
	}
	return players.Player{}, false
}

// SetMatchInfo replaces the match logistics, defaulting blank fields to TBD.
func (c *Controller) SetMatchInfo(ctx context.Context, info lineup.MatchInfo) {
	c.mutate(ctx, "match_info", func() {
		info.Normalize()
		c.state.MatchInfo = info
		c.state.Recount()
	})
}

// AssignMajor places the roster player identified by playerID at position.
// An empty playerID clears the slot; unknown identifiers are ignored.
func (c *Controller) AssignMajor(ctx context.Context, position players.Position, playerID string) {
	c.mutate(ctx, "assign_major", func() {
		if playerID == "" {
			rules.AssignMajor(c.state, position, nil)
			return
		}
		if p, ok := c.findPlayer(playerID); ok {
			rules.AssignMajor(c.state, position, &p)
		}
	})
}

// AssignCoach sets or clears the coach slot.
func (c *Controller) AssignCoach(ctx context.Context, playerID string) {
	c.mutate(ctx, "assign_coach", func() {
		if playerID == "" {
			rules.AssignCoach(c.state, nil)
			return
		}
		if p, ok := c.findPlayer(playerID); ok {
			rules.AssignCoach(c.state, &p)
		}
	})
}

// AssignSubstitute sets or clears the bench slot at index.
func (c *Controller) AssignSubstitute(ctx context.Context, index int, playerID string) {
	c.mutate(ctx, "assign_substitute", func() {
		if playerID == "" {
			rules.AssignSubstitute(c.state, index, nil)
			return
		}
		if p, ok := c.findPlayer(playerID); ok {
			rules.AssignSubstitute(c.state, index, &p)
		}
	})
}

// SetScore records the final score and rederives the match status unless it
// was pinned by an explicit status edit.
func (c *Controller) SetScore(ctx context.Context, home, away int) {
	c.mutate(ctx, "set_score", func() {
		c.state.EnsureResult().SetScore(home, away)
	})
}

// SetStatus overrides the derived match status. Setting PENDING resumes
// score-based derivation.
func (c *Controller) SetStatus(ctx context.Context, status lineup.MatchStatus) {
	c.mutate(ctx, "set_status", func() {
		c.state.EnsureResult().SetStatus(status)
	})
}

// AddHighlight appends a highlight entry.
func (c *Controller) AddHighlight(ctx context.Context, text string) {
	c.mutate(ctx, "add_highlight", func() {
		c.state.EnsureResult().AddHighlight(text)
	})
}

// RemoveHighlight drops the highlight at index, ignoring out-of-range values.
func (c *Controller) RemoveHighlight(ctx context.Context, index int) {
	c.mutate(ctx, "remove_highlight", func() {
		c.state.EnsureResult().RemoveHighlight(index)
	})
}

// SetNotes replaces the free-form match notes.
func (c *Controller) SetNotes(ctx context.Context, notes string) {
	c.mutate(ctx, "set_notes", func() {
		c.state.EnsureResult().Notes = notes
	})
}

// ClearMatchData resets the match logistics to TBD placeholders, keeping all
// player assignments.
func (c *Controller) ClearMatchData(ctx context.Context) {
	c.mutate(ctx, "clear_match_data", func() {
		c.state.MatchInfo = lineup.NewMatchInfo()
	})
}

// ClearSavedData empties assignments, coach and bench while keeping the
// match logistics.
func (c *Controller) ClearSavedData(ctx context.Context) {
	c.mutate(ctx, "clear_saved_data", func() {
		c.state.MajorPlayers = nil
		c.state.Coach = nil
		c.state.Substitutes = nil
		c.state.Recount()
	})
}

// Summary projects the current composition for rendering collaborators.
func (c *Controller) Summary() projection.TeamCompositionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return projection.Project(c.state)
}

// Snapshot returns an isolated copy of the composition for export.
func (c *Controller) Snapshot() *lineup.CompositionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Export serializes the composition into the file exchange document and
// reports the suggested download name.
func (c *Controller) Export(ctx context.Context) ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := snapshots.Export(c.state, c.now())
	if err != nil {
		return nil, "", err
	}
	return data, snapshots.SuggestedFilename(c.state), nil
}

// Import parses an export document and replaces the composition according to
// mode. A malformed document leaves the session untouched.
func (c *Controller) Import(ctx context.Context, data []byte, mode snapshots.ImportMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := snapshots.Import(data, mode, c.state)
	if err != nil {
		return err
	}
	c.state = next
	c.recorder.RecordMutation("import")
	c.persist(ctx)
	c.notify()
	return nil
}

// mutate runs fn under the lock, then persists and publishes a projection.
func (c *Controller) mutate(ctx context.Context, kind string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn()
	c.recorder.RecordMutation(kind)
	c.persist(ctx)
	c.notify()
}

// persist writes the snapshot best-effort. Callers hold the lock.
func (c *Controller) persist(ctx context.Context) {
	if c.saver == nil {
		return
	}
	if err := c.saver.Save(ctx, c.teamID, c.state); err != nil {
		logging.Warn(logging.FromContext(ctx, c.logger), "snapshot save failed",
			slog.String(logging.FieldTeamID, c.teamID),
			slog.String(logging.FieldError, err.Error()))
	}
}

func (c *Controller) notify() {
	if c.observer == nil {
		return
	}
	c.observer(projection.Project(c.state))
}
