package players

import "strings"

// Skill bounds for the six rated attributes.
const (
	MinSkill = 0
	MaxSkill = 10
)

// Skills holds the six rated attributes of a player on a 0-10 scale.
type Skills struct {
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
	Stamina   int `json:"stamina"`
	Technique int `json:"technique"`
	Teamplay  int `json:"teamplay"`
}

// Clamp returns a copy with every attribute forced into [MinSkill, MaxSkill].
func (s Skills) Clamp() Skills {
	s.Attack = clampSkill(s.Attack)
	s.Defense = clampSkill(s.Defense)
	s.Speed = clampSkill(s.Speed)
	s.Stamina = clampSkill(s.Stamina)
	s.Technique = clampSkill(s.Technique)
	s.Teamplay = clampSkill(s.Teamplay)
	return s
}

func clampSkill(v int) int {
	if v < MinSkill {
		return MinSkill
	}
	if v > MaxSkill {
		return MaxSkill
	}
	return v
}

// Player is an immutable roster record. Players are value records compared
// by ID(), never by reference, so the same player can safely appear in
// candidate lists, assignments and projections without aliasing concerns.
type Player struct {
	FamilyName string     `json:"familyName"`
	GivenName  string     `json:"givenName"`
	Nickname   string     `json:"nickname,omitempty"`
	Skills     Skills     `json:"skills"`
	Position   Position   `json:"position"`
	Secondary  []Position `json:"secondary,omitempty"`
	Group      string     `json:"group,omitempty"`
}

// ID returns the stable identity key of the player, a composite of the
// name fields. Two roster entries with equal IDs are the same player.
func (p Player) ID() string {
	return strings.Join([]string{p.FamilyName, p.GivenName, p.Nickname}, "|")
}

// IsCoach reports whether the player's primary position is the coach role.
func (p Player) IsCoach() bool {
	return p.Position == Coach
}

// EligibleFor reports whether the player declares pos as primary or
// secondary. Coaches are never eligible for tactical positions.
func (p Player) EligibleFor(pos Position) bool {
	if p.IsCoach() {
		return pos == Coach
	}
	if pos == Coach {
		return false
	}
	if p.Position == pos {
		return true
	}
	for _, s := range p.Secondary {
		if s == pos {
			return true
		}
	}
	return false
}

// DisplayName returns the nickname when set, otherwise "Given Family".
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return strings.TrimSpace(p.GivenName + " " + p.FamilyName)
}
