package summary

import (
	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/season"
)

const formWindow = 5

// Form compares the manager's recent scoring with the season so far.
type Form struct {
	Window        int     `json:"window"`
	Gameweeks     []int   `json:"gameweeks"`
	RecentAverage float64 `json:"recent_average"`
	SeasonAverage float64 `json:"season_average"`
	Delta         float64 `json:"delta"`
}

// recentForm averages points over the last window finished gameweeks that
// have a history row. A non-positive window means formWindow.
func recentForm(c *season.Context, window int) Form {
	if window <= 0 {
		window = formWindow
	}
	f := Form{Window: window, Gameweeks: []int{}}

	sum, count, total, rows := 0, 0, 0, 0
	for i := len(c.Finished) - 1; i >= 0; i-- {
		gw := c.Finished[i]
		h, ok := c.History[gw]
		if !ok {
			continue
		}
		total += h.Points
		rows++
		if count < window {
			sum += h.Points
			count++
			f.Gameweeks = append([]int{gw}, f.Gameweeks...)
		}
	}
	if count == 0 {
		return f
	}

	f.RecentAverage = mathutil.Round2(float64(sum) / float64(count))
	f.SeasonAverage = mathutil.Round2(float64(total) / float64(rows))
	f.Delta = mathutil.Round2(f.RecentAverage - f.SeasonAverage)
	return f
}
