// Package summary assembles the season analyses and the manager persona
// into one output document.
package summary

import (
	"encoding/json"
	"os"
	"path/filepath"

	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/ledger"
	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/persona"
	"fpl-season-mcp/internal/reconcile"
	"fpl-season-mcp/internal/season"
)

const (
	topContributors = 5
	longestHolds    = 5
)

type Options struct {
	Tuning persona.Tuning
}

func DefaultOptions() Options {
	return Options{Tuning: persona.DefaultTuning()}
}

type Totals struct {
	Gameweeks         int     `json:"gameweeks"`
	Points            int     `json:"points"`
	AveragePoints     float64 `json:"average_points"`
	AboveAverageWeeks int     `json:"above_average_weeks"`
	Transfers         int     `json:"transfers"`
	HitCost           int     `json:"hit_cost"`
	BenchPoints       int     `json:"bench_points"`
	ChipsUsed         int     `json:"chips_used"`
}

type RankSummary struct {
	Known        bool    `json:"known"`
	OverallRank  int     `json:"overall_rank"`
	BestRank     int     `json:"best_rank"`
	TotalPlayers int     `json:"total_players"`
	Percentile   float64 `json:"percentile"`
}

type SeasonSummary struct {
	EntryID         int                         `json:"entry_id"`
	EntryName       string                      `json:"entry_name"`
	ManagerName     string                      `json:"manager_name"`
	Totals          Totals                      `json:"totals"`
	Rank            RankSummary                 `json:"rank"`
	Grades          Grades                      `json:"grades"`
	Transfers       []analysis.TransferAnalysis `json:"transfers"`
	TransferTotals  analysis.TransferTotals     `json:"transfer_totals"`
	Captaincy       analysis.CaptaincyReport    `json:"captaincy"`
	Bench           analysis.BenchReport        `json:"bench"`
	Chips           []analysis.ChipAnalysis     `json:"chips"`
	ChipProfile     analysis.ChipProfile        `json:"chip_profile"`
	TemplateOverlap float64                     `json:"template_overlap"`
	TopContributors []Contributor               `json:"top_contributors"`
	Positions       PositionPoints              `json:"positions"`
	SquadValue      SquadValueTrend             `json:"squad_value"`
	Form            Form                        `json:"form"`
	LongestHolds    []ledger.Span               `json:"longest_holds"`
	Persona         persona.ManagerPersona      `json:"persona"`
	DataWarnings    []string                    `json:"data_warnings"`
}

// Build runs the analyzers in sequence over c, then the persona stage.
// Transfers and chips outside the finished gameweeks are ignored.
// The result carries no timestamps, so the same context always marshals to
// the same bytes.
func Build(c *season.Context, opts Options) SeasonSummary {
	c = c.Windowed()
	ix := season.NewIndex(c)

	transfers := analysis.AnalyzeTransfers(ix)
	captaincy := analysis.AnalyzeCaptaincy(ix)
	bench := analysis.AnalyzeBench(ix)
	chips := analysis.AnalyzeChips(ix)
	profile := analysis.ProfileChips(ix, chips)
	owned := ledger.Build(c)

	in := persona.Inputs{
		Index:       ix,
		Transfers:   transfers,
		Captaincy:   captaincy,
		Bench:       bench,
		Chips:       chips,
		ChipProfile: profile,
		Ledger:      owned,
	}
	totals := analysis.Totals(transfers)
	contributors, positions := buildContributors(ix)

	return SeasonSummary{
		EntryID:         c.EntryID,
		EntryName:       c.EntryName,
		ManagerName:     c.ManagerName,
		Totals:          buildTotals(c, bench, profile),
		Rank:            buildRank(c),
		Grades:          buildGrades(totals, captaincy, bench, chips),
		Transfers:       transfers,
		TransferTotals:  totals,
		Captaincy:       captaincy,
		Bench:           bench,
		Chips:           chips,
		ChipProfile:     profile,
		TemplateOverlap: mathutil.Round2(persona.TemplateOverlap(ix, opts.Tuning.TemplateOwnershipPct)),
		TopContributors: topN(contributors, topContributors),
		Positions:       positions,
		SquadValue:      buildSquadValue(c),
		Form:            recentForm(c, formWindow),
		LongestHolds:    owned.Longest(longestHolds),
		Persona:         persona.Build(in, opts.Tuning),
		DataWarnings:    reconcile.BuildReport(c).Warnings(),
	}
}

func buildTotals(c *season.Context, bench analysis.BenchReport, profile analysis.ChipProfile) Totals {
	t := Totals{
		Gameweeks:   len(c.Finished),
		Transfers:   len(c.Transfers),
		HitCost:     persona.TotalHitCost(c),
		BenchPoints: bench.TotalBenchPoints,
		ChipsUsed:   profile.Used,
	}
	rows := 0
	for _, gw := range c.Finished {
		h, ok := c.History[gw]
		if !ok {
			continue
		}
		rows++
		t.Points += h.Points
		if ev, ok := c.Events[gw]; ok && ev.AverageScore > 0 && h.Points > ev.AverageScore {
			t.AboveAverageWeeks++
		}
	}
	if rows > 0 {
		t.AveragePoints = mathutil.Round2(float64(t.Points) / float64(rows))
	}
	return t
}

func buildRank(c *season.Context) RankSummary {
	r := RankSummary{TotalPlayers: c.TotalPlayers}
	for _, gw := range c.Finished {
		h := c.History[gw]
		if h.OverallRank > 0 && (r.BestRank == 0 || h.OverallRank < r.BestRank) {
			r.BestRank = h.OverallRank
		}
	}
	h, ok := c.FinalHistory()
	if !ok || h.OverallRank <= 0 {
		return r
	}
	r.OverallRank = h.OverallRank
	if c.TotalPlayers > 0 {
		r.Known = true
		r.Percentile = mathutil.Round2(100 * float64(h.OverallRank) / float64(c.TotalPlayers))
	}
	return r
}

func WriteSummary(path string, s SeasonSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}
