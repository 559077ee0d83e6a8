package rosterapi

import "lineup-service/internal/domain/players"

// mapPlayer normalizes a raw roster record into the domain shape. The
// first declared position is primary; at most two more become secondary.
// Unknown position strings are dropped rather than failing the roster.
func mapPlayer(raw rawPlayer) players.Player {
	p := players.Player{
		FamilyName: raw.FamilyName,
		GivenName:  raw.GivenName,
		Nickname:   raw.Nickname,
		Group:      raw.Group,
		Skills: players.Skills{
			Attack:    raw.Skills.Attack,
			Defense:   raw.Skills.Defense,
			Speed:     raw.Skills.Speed,
			Stamina:   raw.Skills.Stamina,
			Technique: raw.Skills.Technique,
			Teamplay:  raw.Skills.Teamplay,
		}.Clamp(),
	}

	for _, rawPos := range raw.Positions {
		pos, ok := players.ParsePosition(rawPos)
		if !ok {
			continue
		}
		if p.Position == "" {
			p.Position = pos
			continue
		}
		if len(p.Secondary) < 2 {
			p.Secondary = append(p.Secondary, pos)
		}
	}
	return p
}

func mapRoster(resp rosterResponse) []players.Player {
	roster := make([]players.Player, 0, len(resp.Players))
	for _, raw := range resp.Players {
		p := mapPlayer(raw)
		if p.Position == "" {
			// A record with no recognizable position is unusable.
			continue
		}
		roster = append(roster, p)
	}
	return roster
}
