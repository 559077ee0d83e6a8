package rosterapi

// rosterResponse is the upstream roster document. The shape matches the
// records produced by the spreadsheet conversion tooling, so no field
// renaming happens between the sheet export and this API.
type rosterResponse struct {
	Team    string      `json:"team"`
	Players []rawPlayer `json:"players"`
}

type rawPlayer struct {
	FamilyName string    `json:"familyName"`
	GivenName  string    `json:"givenName"`
	Nickname   string    `json:"nickname"`
	Positions  []string  `json:"positions"`
	Skills     rawSkills `json:"skills"`
	Group      string    `json:"group"`
}

type rawSkills struct {
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
	Stamina   int `json:"stamina"`
	Technique int `json:"technique"`
	Teamplay  int `json:"teamplay"`
}

type opponentsResponse struct {
	Opponents []rawOpponent `json:"opponents"`
}

type rawOpponent struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	LogoURL   string `json:"logoUrl"`
}
