package players

// Position is the closed set of roles a player can hold on match day:
// seven tactical positions plus the coach role.
type Position string

const (
	Goalkeeper Position = "GOALKEEPER"
	LeftWing   Position = "LEFT_WING"
	LeftBack   Position = "LEFT_BACK"
	CentreBack Position = "CENTRE_BACK"
	RightBack  Position = "RIGHT_BACK"
	RightWing  Position = "RIGHT_WING"
	Pivot      Position = "PIVOT"
	Coach      Position = "COACH"
)

// TacticalPositions lists the seven on-court positions in rendering order.
// Coach is deliberately excluded; it is a staff role, not a tactical slot.
var TacticalPositions = [7]Position{
	Goalkeeper,
	LeftWing,
	LeftBack,
	CentreBack,
	RightBack,
	RightWing,
	Pivot,
}

// ParsePosition converts a raw string into a Position.
func ParsePosition(raw string) (Position, bool) {
	switch Position(raw) {
	case Goalkeeper, LeftWing, LeftBack, CentreBack, RightBack, RightWing, Pivot, Coach:
		return Position(raw), true
	}
	return "", false
}

// IsTactical reports whether the position is one of the seven on-court roles.
func (p Position) IsTactical() bool {
	switch p {
	case Goalkeeper, LeftWing, LeftBack, CentreBack, RightBack, RightWing, Pivot:
		return true
	}
	return false
}

// Valid reports whether the position belongs to the closed enumeration.
func (p Position) Valid() bool {
	return p == Coach || p.IsTactical()
}

// Label returns the human-readable name used by rendering collaborators.
func (p Position) Label() string {
	switch p {
	case Goalkeeper:
		return "Goalkeeper"
	case LeftWing:
		return "Left Wing"
	case LeftBack:
		return "Left Back"
	case CentreBack:
		return "Centre Back"
	case RightBack:
		return "Right Back"
	case RightWing:
		return "Right Wing"
	case Pivot:
		return "Pivot"
	case Coach:
		return "Coach"
	}
	return string(p)
}
