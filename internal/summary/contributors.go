package summary

import (
	"sort"

	"fpl-season-mcp/internal/points"
	"fpl-season-mcp/internal/season"
)

type Contributor struct {
	Element   int    `json:"element"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Points    int    `json:"points"`
	Gameweeks int    `json:"gameweeks"`
}

type PositionPoints struct {
	GK  int `json:"gk"`
	DEF int `json:"def"`
	MID int `json:"mid"`
	FWD int `json:"fwd"`
}

// buildContributors credits each player with the points they scored for the
// team, multipliers applied, and splits the same points by position. Only
// picks that counted are credited, so bench players appear through a Bench
// Boost alone.
func buildContributors(ix *season.Index) ([]Contributor, PositionPoints) {
	c := ix.Context()
	byElement := make(map[int]*Contributor)
	pos := PositionPoints{}

	for _, gw := range c.Finished {
		if !ix.HasPicks(gw) {
			continue
		}
		res := points.BuildResult(c.EntryID, gw, c.Picks[gw], c.Live[gw])
		for _, pp := range res.Players {
			if pp.Multiplier == 0 {
				continue
			}
			ct, ok := byElement[pp.Element]
			if !ok {
				ct = &Contributor{Element: pp.Element, Name: ix.PlayerName(pp.Element)}
				if pl, found := ix.Player(pp.Element); found {
					ct.Position = pl.Position.String()
				}
				byElement[pp.Element] = ct
			}
			ct.Points += pp.Total
			ct.Gameweeks++

			pl, _ := ix.Player(pp.Element)
			addPositionPoints(&pos, pl.Position, pp.Total)
		}
	}

	out := make([]Contributor, 0, len(byElement))
	for _, ct := range byElement {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Element < out[j].Element
	})
	return out, pos
}

func addPositionPoints(p *PositionPoints, pos season.Position, pts int) {
	switch pos {
	case season.GK:
		p.GK += pts
	case season.DEF:
		p.DEF += pts
	case season.MID:
		p.MID += pts
	case season.FWD:
		p.FWD += pts
	}
}

func topN(cs []Contributor, n int) []Contributor {
	if len(cs) > n {
		return cs[:n]
	}
	return cs
}
