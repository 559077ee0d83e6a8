// Package rules holds the pure assignment rules of the lineup engine.
//
// Every mutation keeps the state invariants: a player occupies at most one
// slot across majors, coach and bench; at most one entry per tactical
// position; only coaches in the coach seat; the first five bench slots are
// structural and survive clearing as empty placeholders; and the derived
// summary counts are recomputed after every call, never incremented.
package rules

import (
	"lineup-service/internal/domain/lineup"
	"lineup-service/internal/domain/players"
)

// Candidates is the eligible candidate set for one slot, partitioned into
// exact matches (players declaring the position) ranked first, and any
// other non-coach player still unassigned.
type Candidates struct {
	Exact []players.Player
	Other []players.Player
}

// EligibleForPosition computes the candidate set for pos against the
// roster. Players already occupying any slot of the state are excluded,
// except the current occupant of the slot being edited. The coach slot
// draws only from roster entries whose primary position is coach.
func EligibleForPosition(state *lineup.CompositionState, roster []players.Player, pos players.Position) Candidates {
	used := occupiedIDs(state, pos)

	var c Candidates
	for _, p := range roster {
		if used[p.ID()] {
			continue
		}
		if pos == players.Coach {
			if p.IsCoach() {
				c.Exact = append(c.Exact, p)
			}
			continue
		}
		if p.IsCoach() {
			continue
		}
		if p.EligibleFor(pos) {
			c.Exact = append(c.Exact, p)
		} else {
			c.Other = append(c.Other, p)
		}
	}
	return c
}

// occupiedIDs collects the IDs of players in any slot, skipping the
// occupant of the slot being edited so it stays selectable.
func occupiedIDs(state *lineup.CompositionState, editing players.Position) map[string]bool {
	used := make(map[string]bool)
	for _, a := range state.MajorPlayers {
		if a.Position == editing {
			continue
		}
		used[a.Player.ID()] = true
	}
	if state.Coach != nil && editing != players.Coach {
		used[state.Coach.ID()] = true
	}
	for _, sub := range state.Substitutes {
		if sub != nil {
			used[sub.ID()] = true
		}
	}
	return used
}

// AssignMajor sets or clears the assignment for a tactical position.
// A nil player clears the position. Assigning re-checks exclusivity
// itself: the player is evicted from any other slot it currently
// occupies before being inserted, so the invariant holds even when the
// caller skipped the candidate filtering. Coaches and non-tactical
// positions are rejected silently.
func AssignMajor(state *lineup.CompositionState, pos players.Position, player *players.Player) {
	if !pos.IsTactical() {
		return
	}
	if player == nil {
		removeMajor(state, pos)
		state.Recount()
		return
	}
	if player.IsCoach() {
		return
	}
	evict(state, player.ID())
	removeMajor(state, pos)
	state.MajorPlayers = append(state.MajorPlayers, lineup.Assignment{Position: pos, Player: *player})
	state.Recount()
}

// AssignCoach sets or clears the coach. A player whose primary position is
// not coach is ignored without touching the state.
func AssignCoach(state *lineup.CompositionState, player *players.Player) {
	if player == nil {
		state.Coach = nil
		state.Recount()
		return
	}
	if !player.IsCoach() {
		return
	}
	evict(state, player.ID())
	coach := *player
	state.Coach = &coach
	state.Recount()
}

// AssignSubstitute sets or clears the bench slot at index. Setting grows
// the bench with empty placeholders up to index. Clearing an additional
// slot (index >= BaseSubstitutes) removes the slot entirely; clearing a
// base slot retains an empty placeholder so the bench structure survives.
func AssignSubstitute(state *lineup.CompositionState, index int, player *players.Player) {
	if index < 0 || index >= lineup.MaxSubstitutes {
		return
	}
	if player == nil {
		clearSubstitute(state, index)
		state.Recount()
		return
	}
	if player.IsCoach() {
		return
	}
	evict(state, player.ID())
	for len(state.Substitutes) <= index {
		state.Substitutes = append(state.Substitutes, nil)
	}
	sub := *player
	state.Substitutes[index] = &sub
	state.Recount()
}

// ValidateComplete reports whether all seven tactical positions and the
// coach are filled. It is the sole gate for leaving the selection step.
func ValidateComplete(state *lineup.CompositionState) error {
	var missing []players.Position
	for _, pos := range players.TacticalPositions {
		if _, ok := state.MajorAt(pos); !ok {
			missing = append(missing, pos)
		}
	}
	if len(missing) == 0 && state.Coach != nil {
		return nil
	}
	return &ValidationError{MissingPositions: missing, MissingCoach: state.Coach == nil}
}

func removeMajor(state *lineup.CompositionState, pos players.Position) {
	for i, a := range state.MajorPlayers {
		if a.Position == pos {
			state.MajorPlayers = append(state.MajorPlayers[:i], state.MajorPlayers[i+1:]...)
			return
		}
	}
}

func clearSubstitute(state *lineup.CompositionState, index int) {
	if index >= len(state.Substitutes) {
		return
	}
	if index < lineup.BaseSubstitutes {
		state.Substitutes[index] = nil
		return
	}
	state.Substitutes = append(state.Substitutes[:index], state.Substitutes[index+1:]...)
}

// evict removes the player from every slot it occupies, using the same
// base/additional semantics for bench slots as an explicit clear.
func evict(state *lineup.CompositionState, id string) {
	for i, a := range state.MajorPlayers {
		if a.Player.ID() == id {
			state.MajorPlayers = append(state.MajorPlayers[:i], state.MajorPlayers[i+1:]...)
			break
		}
	}
	if state.Coach != nil && state.Coach.ID() == id {
		state.Coach = nil
	}
	for i, sub := range state.Substitutes {
		if sub != nil && sub.ID() == id {
			clearSubstitute(state, i)
			break
		}
	}
}
