package analysis

import (
	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/season"
)

type CaptaincyAnalysis struct {
	Gameweek          int    `json:"gameweek"`
	CaptainID         int    `json:"captain_id"`
	CaptainName       string `json:"captain_name"`
	Multiplier        int    `json:"multiplier"`
	RawPoints         int    `json:"raw_points"`
	Points            int    `json:"points"`
	BestID            int    `json:"best_id"`
	BestName          string `json:"best_name"`
	BestRawPoints     int    `json:"best_raw_points"`
	PointsLeftOnTable int    `json:"points_left_on_table"`
	WasOptimal        bool   `json:"was_optimal"`
	FollowedTemplate  bool   `json:"followed_template"`
}

type CaptaincyReport struct {
	Records         []CaptaincyAnalysis `json:"records"`
	SuccessRate     float64             `json:"success_rate"`
	HerdFactor      float64             `json:"herd_factor"`
	TotalPointsLeft int                 `json:"total_points_left"`
	CaptainPoints   int                 `json:"captain_points"`
}

// AnalyzeCaptaincy compares each gameweek's captain with the best starter.
// The captain is the incumbent best, so ties keep the armband where it was.
func AnalyzeCaptaincy(ix *season.Index) CaptaincyReport {
	c := ix.Context()
	r := CaptaincyReport{Records: make([]CaptaincyAnalysis, 0, len(c.Finished))}
	optimal, herd := 0, 0

	for _, gw := range c.Finished {
		capt, ok := ix.Captain(gw)
		if !ok {
			continue
		}
		mult := capt.Multiplier
		if mult < 1 {
			mult = 1
		}
		raw := ix.Points(gw, capt.Element)

		best, bestRaw := capt.Element, raw
		for _, p := range ix.Starters(gw) {
			if pts := ix.Points(gw, p.Element); pts > bestRaw {
				best, bestRaw = p.Element, pts
			}
		}

		a := CaptaincyAnalysis{
			Gameweek:          gw,
			CaptainID:         capt.Element,
			CaptainName:       ix.PlayerName(capt.Element),
			Multiplier:        mult,
			RawPoints:         raw,
			Points:            raw * mult,
			BestID:            best,
			BestName:          ix.PlayerName(best),
			BestRawPoints:     bestRaw,
			PointsLeftOnTable: (mult - 1) * (bestRaw - raw),
			WasOptimal:        best == capt.Element,
		}
		if mc := c.Events[gw].MostCaptained; mc != 0 && mc == capt.Element {
			a.FollowedTemplate = true
			herd++
		}
		if a.WasOptimal {
			optimal++
		}
		r.TotalPointsLeft += a.PointsLeftOnTable
		r.CaptainPoints += a.Points
		r.Records = append(r.Records, a)
	}

	if n := len(r.Records); n > 0 {
		r.SuccessRate = mathutil.Round2(100 * float64(optimal) / float64(n))
		r.HerdFactor = mathutil.Round2(float64(herd) / float64(n))
	}
	return r
}
