package lineup

// TBD is the sentinel used for match details not yet decided.
// Free-form match fields are never empty strings once normalized.
const TBD = "TBD"

// MatchInfo holds the logistics of one match.
type MatchInfo struct {
	Opponent     string `json:"opponent"`
	Venue        string `json:"venue"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	MeetingPoint string `json:"meetingPoint"`
	Home         bool   `json:"home"`
}

// NewMatchInfo returns match info with every free-form field set to TBD.
func NewMatchInfo() MatchInfo {
	return MatchInfo{
		Opponent:     TBD,
		Venue:        TBD,
		Date:         TBD,
		Time:         TBD,
		MeetingPoint: TBD,
	}
}

// Normalize replaces unset free-form fields with the TBD sentinel.
func (m *MatchInfo) Normalize() {
	if m.Opponent == "" {
		m.Opponent = TBD
	}
	if m.Venue == "" {
		m.Venue = TBD
	}
	if m.Date == "" {
		m.Date = TBD
	}
	if m.Time == "" {
		m.Time = TBD
	}
	if m.MeetingPoint == "" {
		m.MeetingPoint = TBD
	}
}
