package points

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fpl-season-mcp/internal/season"
)

type PlayerPoints struct {
	Element    int `json:"element"`
	Position   int `json:"position"`
	Minutes    int `json:"minutes"`
	Points     int `json:"points"`
	Multiplier int `json:"multiplier"`
	Total      int `json:"total"`
}

type Result struct {
	EntryID     int            `json:"entry_id"`
	Gameweek    int            `json:"gameweek"`
	Players     []PlayerPoints `json:"players"`
	BenchPoints int            `json:"bench_points"`
	TotalPoints int            `json:"total_points"`
}

// BuildResult scores picks against live stats. Starters count raw points times
// their multiplier (captain 2, triple captain 3); bench slots only count when
// their multiplier is non-zero, which is how a Bench Boost week is recorded.
func BuildResult(entryID int, gw int, picks []season.Pick, liveByElement map[int]season.LiveStats) *Result {
	players := make([]PlayerPoints, 0, len(picks))
	total, bench := 0, 0

	for _, p := range picks {
		live := liveByElement[p.Element]
		mult := p.Multiplier
		if p.Starter() && mult < 1 {
			mult = 1
		}
		pp := PlayerPoints{
			Element:    p.Element,
			Position:   p.Position,
			Minutes:    live.Minutes,
			Points:     live.TotalPoints,
			Multiplier: mult,
			Total:      live.TotalPoints * mult,
		}
		if !p.Starter() {
			bench += live.TotalPoints
		}
		players = append(players, pp)
		total += pp.Total
	}

	return &Result{
		EntryID:     entryID,
		Gameweek:    gw,
		Players:     players,
		BenchPoints: bench,
		TotalPoints: total,
	}
}

// StartersOnly returns the 11 starting picks of picks, keeping their multipliers.
func StartersOnly(picks []season.Pick) []season.Pick {
	out := make([]season.Pick, 0, season.MaxStarterPosition)
	for _, p := range picks {
		if p.Starter() {
			out = append(out, p)
		}
	}
	return out
}

func WriteResult(path string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
