package lineup

// MatchStatus is the outcome of a played match.
type MatchStatus string

const (
	StatusPending MatchStatus = "PENDING"
	StatusVictory MatchStatus = "VICTORY"
	StatusDefeat  MatchStatus = "DEFEAT"
	StatusDraw    MatchStatus = "DRAW"
)

// ParseMatchStatus converts a raw string into a MatchStatus.
func ParseMatchStatus(raw string) (MatchStatus, bool) {
	switch MatchStatus(raw) {
	case StatusPending, StatusVictory, StatusDefeat, StatusDraw:
		return MatchStatus(raw), true
	}
	return "", false
}

// MatchResult records scores and outcome after (or during) a match.
//
// The status auto-derives from the scores only while it has never been set
// explicitly. An explicit SetStatus call pins the status; later score edits
// no longer override it.
type MatchResult struct {
	HomeScore    int         `json:"homeScore"`
	AwayScore    int         `json:"awayScore"`
	Status       MatchStatus `json:"matchStatus"`
	StatusPinned bool        `json:"statusPinned,omitempty"`
	Highlights   []string    `json:"highlights"`
	Notes        string      `json:"notes,omitempty"`
}

// NewMatchResult returns an empty result in the pending state.
func NewMatchResult() *MatchResult {
	return &MatchResult{Status: StatusPending, Highlights: []string{}}
}

// SetScore updates both scores, re-deriving the status unless it is pinned.
func (r *MatchResult) SetScore(home, away int) {
	r.HomeScore = home
	r.AwayScore = away
	if !r.StatusPinned {
		r.Status = deriveStatus(home, away)
	}
}

// SetStatus pins the status explicitly. Setting it back to pending
// unpins it, so score edits derive the outcome again.
func (r *MatchResult) SetStatus(status MatchStatus) {
	r.Status = status
	r.StatusPinned = status != StatusPending
}

// AddHighlight appends a free-text highlight.
func (r *MatchResult) AddHighlight(text string) {
	r.Highlights = append(r.Highlights, text)
}

// RemoveHighlight deletes the highlight at index; out of range is a no-op.
func (r *MatchResult) RemoveHighlight(index int) {
	if index < 0 || index >= len(r.Highlights) {
		return
	}
	r.Highlights = append(r.Highlights[:index], r.Highlights[index+1:]...)
}

// Clone returns a deep copy of the result.
func (r *MatchResult) Clone() *MatchResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Highlights = append([]string(nil), r.Highlights...)
	return &cp
}

func deriveStatus(home, away int) MatchStatus {
	switch {
	case home > away:
		return StatusVictory
	case home < away:
		return StatusDefeat
	case home > 0:
		return StatusDraw
	default:
		return StatusPending
	}
}
