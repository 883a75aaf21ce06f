package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/season/seasontest"
)

func chipByName(t *testing.T, chips []ChipAnalysis, name season.ChipName) ChipAnalysis {
	t.Helper()
	for _, c := range chips {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("chip %s missing", name)
	return ChipAnalysis{}
}

func TestAnalyzeChips_AlwaysFourInOrder(t *testing.T) {
	chips := AnalyzeChips(season.NewIndex(newSeason().Build()))

	require.Len(t, chips, 4)
	for i, name := range season.Chips {
		assert.Equal(t, name, chips[i].Name)
		assert.False(t, chips[i].Used)
		assert.Equal(t, ChipPending, chips[i].Verdict)
		assert.Equal(t, 0, chips[i].PointsGained)
		assert.Equal(t, 0, chips[i].Gameweek)
	}
}

func TestAnalyzeChips_BenchBoost(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Gameweek(2, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Squad(2, 10, squad...).
		Scores(1, squad, append(flat(11, 3), 1, 1, 1, 1)).
		Scores(2, squad, append(flat(11, 3), 2, 5, 8, 10)).
		Chip(season.BenchBoost, 2)

	bb := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.BenchBoost)

	assert.True(t, bb.Used)
	assert.Equal(t, 2, bb.Gameweek)
	assert.Equal(t, 25, bb.PointsGained)
	assert.Equal(t, ChipExcellent, bb.Verdict)
	assert.Equal(t, 4.0, bb.Metadata["avg_other_bench"])
	assert.Equal(t, 21.0, bb.Metadata["differential"])
}

func TestAnalyzeChips_BenchBoostDifferentialTiers(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Gameweek(2, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Squad(2, 10, squad...).
		Scores(1, squad, append(flat(11, 3), 5, 5, 5, 5)).
		Scores(2, squad, append(flat(11, 3), 6, 5, 6, 6)).
		Chip(season.BenchBoost, 2)

	bb := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.BenchBoost)

	assert.Equal(t, 23, bb.PointsGained)
	assert.Equal(t, ChipDecent, bb.Verdict, "differential of 3")
}

func TestAnalyzeChips_TripleCaptain(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Multiplier(1, 10, 3).
		Score(1, 10, 9).
		Chip(season.TripleCaptain, 1)

	tc := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.TripleCaptain)

	assert.Equal(t, 9, tc.PointsGained)
	assert.Equal(t, ChipDecent, tc.Verdict)
	assert.Equal(t, 27, tc.Metadata["captain_points"])
}

func TestAnalyzeChips_FreeHit(t *testing.T) {
	fhSquad := seasontest.Range(30, 15)
	b := newSeason().
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Gameweek(2, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Squad(2, 30, fhSquad...).
		Scores(2, fhSquad, flat(15, 5)).
		Scores(2, squad, flat(15, 3)).
		Chip(season.FreeHit, 2)

	fh := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.FreeHit)

	// 11x5 + captain 5 = 60 against 11x3 + captain 3 = 36.
	assert.Equal(t, 60, fh.Metadata["free_hit_score"])
	assert.Equal(t, 36, fh.Metadata["baseline_score"])
	assert.Equal(t, 24, fh.PointsGained)
	assert.Equal(t, ChipExcellent, fh.Verdict)
}

func TestAnalyzeChips_FreeHitWithoutBaseline(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Scores(1, squad, flat(15, 9)).
		Chip(season.FreeHit, 1)

	fh := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.FreeHit)

	assert.Equal(t, 0, fh.PointsGained)
	assert.Equal(t, true, fh.Metadata["baseline_missing"])
}

func TestAnalyzeChips_WildcardWindow(t *testing.T) {
	b := newSeason()
	for gw := 1; gw <= 10; gw++ {
		pts := 50
		switch {
		case gw == 1:
			pts = 0
		case gw >= 6 && gw <= 9:
			pts = 60
		case gw == 10:
			pts = 200
		}
		b.Gameweek(gw, season.GameweekHistory{Points: pts}, season.Event{AverageScore: 50})
	}
	b.Chip(season.Wildcard, 6)

	wc := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.Wildcard)

	assert.Equal(t, 10, wc.PointsGained)
	assert.Equal(t, ChipExcellent, wc.Verdict)
	assert.Equal(t, []int{2, 3, 4, 5}, wc.Metadata["before_gws"])
	assert.Equal(t, []int{6, 7, 8, 9}, wc.Metadata["after_gws"])
}

func TestAnalyzeChips_WildcardHitsCount(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{Points: 50}, season.Event{AverageScore: 50}).
		Gameweek(2, season.GameweekHistory{Points: 52, EventTransfersCost: 4}, season.Event{AverageScore: 50}).
		Chip(season.Wildcard, 2)

	wc := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.Wildcard)

	assert.Equal(t, -2, wc.PointsGained)
	assert.Equal(t, ChipWasted, wc.Verdict)
}

func TestAnalyzeChips_WildcardFirstWeek(t *testing.T) {
	b := newSeason().
		Gameweek(1, season.GameweekHistory{Points: 80}, season.Event{AverageScore: 50}).
		Chip(season.Wildcard, 1)

	wc := chipByName(t, AnalyzeChips(season.NewIndex(b.Build())), season.Wildcard)

	assert.Equal(t, 0, wc.PointsGained, "no weeks before the wildcard")
	assert.Equal(t, ChipDecent, wc.Verdict)
}

// ---------------------------------------------------------------------------
// ProfileChips
// ---------------------------------------------------------------------------

func TestProfileChips_NoneUsed(t *testing.T) {
	ix := season.NewIndex(newSeason().Build())
	p := ProfileChips(ix, AnalyzeChips(ix))

	assert.Equal(t, 0, p.Used)
	assert.Equal(t, 0.0, p.Effectiveness)
	assert.Equal(t, 0.0, p.Risk)
	assert.Equal(t, 0.5, p.Popularity)
	assert.False(t, p.Strategic)
}

func TestProfileChips_Scores(t *testing.T) {
	b := newSeason().
		Player(10, "Punt", season.FWD, 8).
		Gameweek(1, season.GameweekHistory{}, season.Event{ChipPlays: map[season.ChipName]int{season.BenchBoost: 100}}).
		Gameweek(2, season.GameweekHistory{}, season.Event{ChipPlays: map[season.ChipName]int{season.BenchBoost: 25}}).
		Gameweek(3, season.GameweekHistory{}, season.Event{}).
		Squad(1, 10, squad...).
		Squad(2, 10, squad...).
		Squad(3, 10, squad...).
		Scores(2, squad, append(flat(11, 2), 5, 5, 5, 5)).
		Multiplier(3, 10, 3).
		Score(3, 10, 10).
		Chip(season.BenchBoost, 2).
		Chip(season.TripleCaptain, 3)
	ix := season.NewIndex(b.Build())

	p := ProfileChips(ix, AnalyzeChips(ix))

	assert.Equal(t, 2, p.Used)
	// BB differential 20 -> Excellent, TC 10 -> Decent.
	assert.Equal(t, 0.75, p.Effectiveness)
	// TC on an 8% captain 0.9, BB with 20%-owned bench 0.4.
	assert.Equal(t, 0.65, p.Risk)
	assert.Equal(t, 0.25, p.Popularity, "only the bench boost has play counts")
	assert.False(t, p.Strategic)
}

func TestProfileChips_Strategic(t *testing.T) {
	b := newSeason()
	for gw := 1; gw <= 30; gw++ {
		b.Gameweek(gw, season.GameweekHistory{Points: 50}, season.Event{AverageScore: 50}).Squad(gw, 10, squad...)
	}
	b.Scores(5, squad, flat(15, 1)).Score(5, 10, 20).Multiplier(5, 10, 3)
	b.Scores(10, squad, append(flat(11, 2), 9, 9, 9, 9))
	b.Scores(20, squad, flat(15, 6))
	b.Gameweek(25, season.GameweekHistory{Points: 90}, season.Event{AverageScore: 50})
	b.Chip(season.TripleCaptain, 5).Chip(season.BenchBoost, 10).Chip(season.Wildcard, 25)
	ix := season.NewIndex(b.Build())

	chips := AnalyzeChips(ix)
	p := ProfileChips(ix, chips)

	assert.Equal(t, 3, p.Used)
	assert.Equal(t, ChipExcellent, chipByName(t, chips, season.TripleCaptain).Verdict)
	assert.Equal(t, ChipExcellent, chipByName(t, chips, season.BenchBoost).Verdict)
	assert.GreaterOrEqual(t, p.Effectiveness, 0.5)
	assert.True(t, p.Strategic)
}

func TestAnalyzeChips_IgnoresUnfinishedGameweeks(t *testing.T) {
	b := newSeason()
	for gw := 1; gw <= 3; gw++ {
		b.Gameweek(gw, season.GameweekHistory{Points: 50}, season.Event{AverageScore: 50}).Squad(gw, 10, squad...)
	}
	b.Chip(season.TripleCaptain, 4).Chip(season.Wildcard, 20)

	chips := AnalyzeChips(season.NewIndex(b.Build()))
	for _, name := range []season.ChipName{season.TripleCaptain, season.Wildcard} {
		ch := chipByName(t, chips, name)
		assert.False(t, ch.Used, "%s played after the last finished gameweek", name)
		assert.Equal(t, ChipPending, ch.Verdict)
	}
}
