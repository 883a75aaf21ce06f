package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/points"
	"fpl-season-mcp/internal/season"
)

type ChipVerdict string

const (
	ChipExcellent ChipVerdict = "Excellent"
	ChipDecent    ChipVerdict = "Decent"
	ChipWasted    ChipVerdict = "Wasted"
	ChipPending   ChipVerdict = "Pending"
)

// wildcardWindow is how many finished gameweeks either side of a Wildcard
// are compared.
const wildcardWindow = 4

type ChipAnalysis struct {
	Name         season.ChipName `json:"name"`
	Label        string          `json:"label"`
	Used         bool            `json:"used"`
	Gameweek     int             `json:"gameweek"`
	PointsGained int             `json:"points_gained"`
	Verdict      ChipVerdict     `json:"verdict"`
	Metadata     map[string]any  `json:"metadata"`
}

// AnalyzeChips always returns one record per chip in season.Chips order.
func AnalyzeChips(ix *season.Index) []ChipAnalysis {
	c := ix.Context()
	out := make([]ChipAnalysis, 0, len(season.Chips))
	for _, name := range season.Chips {
		a := ChipAnalysis{
			Name:     name,
			Label:    name.Label(),
			Verdict:  ChipPending,
			Metadata: map[string]any{},
		}
		gw := c.ChipEvent(name)
		if gw == 0 {
			out = append(out, a)
			continue
		}
		a.Used = true
		a.Gameweek = gw
		switch name {
		case season.BenchBoost:
			benchBoost(ix, &a)
		case season.TripleCaptain:
			tripleCaptain(ix, &a)
		case season.FreeHit:
			freeHit(ix, &a)
		case season.Wildcard:
			wildcard(ix, &a)
		}
		out = append(out, a)
	}
	return out
}

func benchBoost(ix *season.Index, a *ChipAnalysis) {
	c := ix.Context()
	bench := make([]BenchPlayer, 0, 4)
	for _, p := range ix.Bench(a.Gameweek) {
		pts := ix.Points(a.Gameweek, p.Element)
		bench = append(bench, BenchPlayer{Element: p.Element, Name: ix.PlayerName(p.Element), Points: pts})
		a.PointsGained += pts
	}

	var others []float64
	for _, gw := range c.Finished {
		if gw == a.Gameweek || !ix.HasPicks(gw) {
			continue
		}
		sum := 0
		for _, p := range ix.Bench(gw) {
			sum += ix.Points(gw, p.Element)
		}
		others = append(others, float64(sum))
	}
	avg := mean(others)
	diff := float64(a.PointsGained) - avg

	a.Verdict = tier(diff, 8, 2)
	a.Metadata["bench"] = bench
	a.Metadata["avg_other_bench"] = mathutil.Round2(avg)
	a.Metadata["differential"] = mathutil.Round2(diff)
}

// tripleCaptain: 3x minus the 2x a normal captain would get is 1x raw.
func tripleCaptain(ix *season.Index, a *ChipAnalysis) {
	capt, ok := ix.Captain(a.Gameweek)
	if !ok {
		a.Verdict = ChipWasted
		a.Metadata["missing_picks"] = true
		return
	}
	raw := ix.Points(a.Gameweek, capt.Element)
	a.PointsGained = raw
	a.Verdict = tier(float64(raw), 15, 8)
	a.Metadata["captain_id"] = capt.Element
	a.Metadata["captain"] = ix.PlayerName(capt.Element)
	a.Metadata["captain_points"] = raw * 3
}

// freeHit compares the Free Hit side with what the previous week's starting
// XI would have scored in the same gameweek.
func freeHit(ix *season.Index, a *ChipAnalysis) {
	c := ix.Context()
	gw := a.Gameweek
	live := c.Live[gw]
	fhScore := points.BuildResult(c.EntryID, gw, c.Picks[gw], live).TotalPoints
	a.Metadata["free_hit_score"] = fhScore

	prev, ok := ix.PrevFinished(gw)
	if !ok || !ix.HasPicks(prev) {
		a.Verdict = tier(0, 15, 5)
		a.Metadata["baseline_missing"] = true
		return
	}
	baseline := points.BuildResult(c.EntryID, gw, points.StartersOnly(c.Picks[prev]), live).TotalPoints
	a.PointsGained = fhScore - baseline
	a.Verdict = tier(float64(a.PointsGained), 15, 5)
	a.Metadata["baseline_gw"] = prev
	a.Metadata["baseline_score"] = baseline
}

func wildcard(ix *season.Index, a *ChipAnalysis) {
	c := ix.Context()
	var before, after []float64
	beforeGWs, afterGWs := []int{}, []int{}
	for _, gw := range c.Finished {
		h, ok := c.History[gw]
		if !ok {
			continue
		}
		net := float64(h.Points - h.EventTransfersCost - c.Events[gw].AverageScore)
		if gw < a.Gameweek {
			before = append(before, net)
			beforeGWs = append(beforeGWs, gw)
		} else if len(after) < wildcardWindow {
			after = append(after, net)
			afterGWs = append(afterGWs, gw)
		}
	}
	if len(before) > wildcardWindow {
		before = before[len(before)-wildcardWindow:]
		beforeGWs = beforeGWs[len(beforeGWs)-wildcardWindow:]
	}

	if len(before) > 0 && len(after) > 0 {
		a.PointsGained = int(math.Round(mean(after) - mean(before)))
	}
	a.Verdict = tier(float64(a.PointsGained), 5, 0)
	a.Metadata["before_gws"] = beforeGWs
	a.Metadata["after_gws"] = afterGWs
	a.Metadata["before_avg"] = mathutil.Round2(mean(before))
	a.Metadata["after_avg"] = mathutil.Round2(mean(after))
}

func tier(v, excellent, decent float64) ChipVerdict {
	switch {
	case v >= excellent:
		return ChipExcellent
	case v >= decent:
		return ChipDecent
	default:
		return ChipWasted
	}
}

// mean is stat.Mean with 0 for an empty sample.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
