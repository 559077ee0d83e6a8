package lineup

import (
	"time"

	"lineup-service/internal/domain/players"
)

// Substitute bench bounds: the first BaseSubstitutes slots are always
// conceptually present; up to MaxSubstitutes-BaseSubstitutes additional
// slots can be added and removed individually.
const (
	BaseSubstitutes = 5
	MaxSubstitutes  = 7
)

// Assignment pairs a tactical position with the player occupying it.
type Assignment struct {
	Position players.Position `json:"position"`
	Player   players.Player   `json:"player"`
}

// SummaryCounts are derived totals, recomputed after every mutation and
// never edited directly.
type SummaryCounts struct {
	TotalPlayers int  `json:"totalPlayers"`
	MajorPlayers int  `json:"majorPlayers"`
	Substitutes  int  `json:"substitutes"`
	HasCoach     bool `json:"hasCoach"`
}

// CompositionState is the aggregate root for one match's lineup-in-progress.
// It is owned by a single wizard controller for the duration of an editing
// session; all mutations go through the rules package.
type CompositionState struct {
	MatchInfo    MatchInfo         `json:"matchInfo"`
	MajorPlayers []Assignment      `json:"majorPlayers"`
	Coach        *players.Player   `json:"coach,omitempty"`
	Substitutes  []*players.Player `json:"substitutes"`
	Summary      SummaryCounts     `json:"summary"`
	Result       *MatchResult      `json:"matchResult,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// New returns an empty composition created at the given time.
func New(createdAt time.Time) *CompositionState {
	return &CompositionState{
		MatchInfo:    NewMatchInfo(),
		MajorPlayers: []Assignment{},
		Substitutes:  []*players.Player{},
		CreatedAt:    createdAt,
	}
}

// EnsureResult returns the match result, creating a pending one on first
// use. The result stays absent (nil in snapshots and projections) until a
// result mutation touches it.
func (s *CompositionState) EnsureResult() *MatchResult {
	if s.Result == nil {
		s.Result = NewMatchResult()
	}
	return s.Result
}

// MajorAt returns the player assigned to pos, if any.
func (s *CompositionState) MajorAt(pos players.Position) (players.Player, bool) {
	for _, a := range s.MajorPlayers {
		if a.Position == pos {
			return a.Player, true
		}
	}
	return players.Player{}, false
}

// Contains reports whether the player identified by id occupies any slot:
// a tactical position, the coach seat or a bench slot.
func (s *CompositionState) Contains(id string) bool {
	for _, a := range s.MajorPlayers {
		if a.Player.ID() == id {
			return true
		}
	}
	if s.Coach != nil && s.Coach.ID() == id {
		return true
	}
	for _, sub := range s.Substitutes {
		if sub != nil && sub.ID() == id {
			return true
		}
	}
	return false
}

// SubstituteCount returns the number of occupied bench slots.
func (s *CompositionState) SubstituteCount() int {
	n := 0
	for _, sub := range s.Substitutes {
		if sub != nil {
			n++
		}
	}
	return n
}

// Recount recomputes the derived summary from the assignments.
func (s *CompositionState) Recount() {
	subs := s.SubstituteCount()
	coach := 0
	if s.Coach != nil {
		coach = 1
	}
	s.Summary = SummaryCounts{
		TotalPlayers: len(s.MajorPlayers) + subs + coach,
		MajorPlayers: len(s.MajorPlayers),
		Substitutes:  subs,
		HasCoach:     coach == 1,
	}
}

// Clone returns a deep copy of the state. Player records are values, so
// copying the containers is enough to sever all aliasing.
func (s *CompositionState) Clone() *CompositionState {
	if s == nil {
		return nil
	}
	cp := *s
	cp.MajorPlayers = make([]Assignment, len(s.MajorPlayers))
	copy(cp.MajorPlayers, s.MajorPlayers)
	if s.Coach != nil {
		coach := *s.Coach
		cp.Coach = &coach
	}
	cp.Substitutes = make([]*players.Player, len(s.Substitutes))
	for i, sub := range s.Substitutes {
		if sub != nil {
			p := *sub
			cp.Substitutes[i] = &p
		}
	}
	cp.Result = s.Result.Clone()
	return &cp
}
