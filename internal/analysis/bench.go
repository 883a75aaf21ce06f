package analysis

import (
	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/season"
)

// RegretThreshold is the missed-points margin above which a bench call
// counts as a mistake.
const RegretThreshold = 3

type BenchPlayer struct {
	Element  int    `json:"element"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Points   int    `json:"points"`
}

type BenchAnalysis struct {
	Gameweek            int           `json:"gameweek"`
	BenchPoints         int           `json:"bench_points"`
	Bench               []BenchPlayer `json:"bench"`
	LowestStarterID     int           `json:"lowest_starter_id"`
	LowestStarterPoints int           `json:"lowest_starter_points"`
	BestBenchID         int           `json:"best_bench_id"`
	BestBenchPoints     int           `json:"best_bench_points"`
	MissedPoints        int           `json:"missed_points"`
	HadBenchRegret      bool          `json:"had_bench_regret"`
	ErrorPosition       string        `json:"error_position,omitempty"`
	BenchBoost          bool          `json:"bench_boost"`
}

type BenchReport struct {
	Records          []BenchAnalysis `json:"records"`
	TotalBenchPoints int             `json:"total_bench_points"`
	TotalMissed      int             `json:"total_missed"`
	RegretWeeks      int             `json:"regret_weeks"`
	// AvgBenchPoints leaves out the Bench Boost week.
	AvgBenchPoints float64 `json:"avg_bench_points"`
}

func AnalyzeBench(ix *season.Index) BenchReport {
	c := ix.Context()
	bb := c.ChipEvent(season.BenchBoost)
	r := BenchReport{Records: make([]BenchAnalysis, 0, len(c.Finished))}
	sumNonBoost, nonBoost := 0, 0

	for _, gw := range c.Finished {
		if !ix.HasPicks(gw) {
			continue
		}
		a := BenchAnalysis{Gameweek: gw, Bench: make([]BenchPlayer, 0, 4), BenchBoost: bb != 0 && gw == bb}

		lowestSet := false
		for _, p := range ix.Starters(gw) {
			pts := ix.Points(gw, p.Element)
			if !lowestSet || pts < a.LowestStarterPoints {
				a.LowestStarterID, a.LowestStarterPoints = p.Element, pts
				lowestSet = true
			}
		}

		bestSet := false
		for _, p := range ix.Bench(gw) {
			pts := ix.Points(gw, p.Element)
			bp := BenchPlayer{Element: p.Element, Name: ix.PlayerName(p.Element), Points: pts}
			if pl, ok := ix.Player(p.Element); ok {
				bp.Position = pl.Position.String()
			}
			a.Bench = append(a.Bench, bp)
			a.BenchPoints += pts
			if !bestSet || pts > a.BestBenchPoints {
				a.BestBenchID, a.BestBenchPoints = p.Element, pts
				bestSet = true
			}
		}

		if !a.BenchBoost && lowestSet && bestSet && a.BestBenchPoints > a.LowestStarterPoints {
			a.MissedPoints = a.BestBenchPoints - a.LowestStarterPoints
		}
		if a.MissedPoints > RegretThreshold {
			a.HadBenchRegret = true
			if pl, ok := ix.Player(a.BestBenchID); ok {
				a.ErrorPosition = pl.Position.String()
			}
			r.RegretWeeks++
		}

		r.TotalBenchPoints += a.BenchPoints
		r.TotalMissed += a.MissedPoints
		if !a.BenchBoost {
			sumNonBoost += a.BenchPoints
			nonBoost++
		}
		r.Records = append(r.Records, a)
	}

	if nonBoost > 0 {
		r.AvgBenchPoints = mathutil.Round2(float64(sumNonBoost) / float64(nonBoost))
	}
	return r
}
