package persona

import (
	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/ledger"
	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/season/seasontest"
)

var squad = seasontest.Range(1, 15)

// inputsFor runs every analyzer the way the summary assembler does.
func inputsFor(c *season.Context) Inputs {
	ix := season.NewIndex(c)
	chips := analysis.AnalyzeChips(ix)
	return Inputs{
		Index:       ix,
		Transfers:   analysis.AnalyzeTransfers(ix),
		Captaincy:   analysis.AnalyzeCaptaincy(ix),
		Bench:       analysis.AnalyzeBench(ix),
		Chips:       chips,
		ChipProfile: analysis.ProfileChips(ix, chips),
		Ledger:      ledger.Build(c),
	}
}

// weeks adds n finished gameweeks with the same squad and history row.
func weeks(b *seasontest.Builder, n int, h season.GameweekHistory) *seasontest.Builder {
	for gw := 1; gw <= n; gw++ {
		b.Gameweek(gw, h, season.Event{}).Squad(gw, 1, squad...)
	}
	return b
}

func flat(n, pts int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = pts
	}
	return out
}
