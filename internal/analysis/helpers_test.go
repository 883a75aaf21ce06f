package analysis

import (
	"fmt"

	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/season/seasontest"
)

// Squad slots 1..15 hold elements 1..15:
// 1 GK, 2-5 DEF, 6-9 MID, 10-11 FWD, bench 12 GK, 13 DEF, 14 MID, 15 FWD.
var squad = seasontest.Range(1, 15)

func newSeason() *seasontest.Builder {
	positions := []season.Position{
		season.GK, season.DEF, season.DEF, season.DEF, season.DEF,
		season.MID, season.MID, season.MID, season.MID, season.FWD, season.FWD,
		season.GK, season.DEF, season.MID, season.FWD,
	}
	b := seasontest.New()
	for i, pos := range positions {
		b.Player(i+1, fmt.Sprintf("P%d", i+1), pos, 20)
	}
	b.Player(20, "In Mid", season.MID, 5).Player(21, "In Fwd", season.FWD, 5)
	return b
}

// flat returns n copies of pts.
func flat(n, pts int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = pts
	}
	return out
}

// replace swaps out for in within slots.
func replace(slots []int, out, in int) []int {
	res := make([]int, len(slots))
	copy(res, slots)
	for i, el := range res {
		if el == out {
			res[i] = in
		}
	}
	return res
}
