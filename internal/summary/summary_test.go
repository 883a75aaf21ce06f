package summary

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/persona"
	"fpl-season-mcp/internal/season"
	"fpl-season-mcp/internal/season/seasontest"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var squad = seasontest.Range(1, 15)

// fullSeason is ten gameweeks with transfers, a hit and two chips.
func fullSeason() *season.Context {
	b := seasontest.New()
	for id := 1; id <= 20; id++ {
		b.Player(id, "P"+string(rune('A'+id)), season.Position(1+id%4), float64(id*2))
	}
	values := []int{1000, 1004, 1010, 1008, 1015, 1022, 1030, 1027, 1033, 1040}
	for gw := 1; gw <= 10; gw++ {
		h := season.GameweekHistory{Points: 45 + gw*3, Value: values[gw-1], OverallRank: 900_000 - gw*10_000}
		if gw == 4 {
			h.EventTransfersCost = 4
		}
		b.Gameweek(gw, h, season.Event{AverageScore: 50, MostCaptained: 3}).Squad(gw, 3, squad...)
		for i, el := range squad {
			b.Score(gw, el, (i+gw)%9)
		}
	}
	b.Transfer(4, 16, 2, seasontest.Deadline(4).Add(-time.Hour))
	b.Transfer(4, 17, 5, seasontest.Deadline(4).Add(-2*time.Hour))
	b.Chip(season.BenchBoost, 6).
		Multiplier(6, 12, 1).Multiplier(6, 13, 1).Multiplier(6, 14, 1).Multiplier(6, 15, 1)
	return b.Build()
}

// ---------------------------------------------------------------------------
// Build
// ---------------------------------------------------------------------------

func TestBuild_ZeroGameweeks(t *testing.T) {
	s := Build(seasontest.New().Build(), DefaultOptions())

	if s.Persona.Key != persona.BlankSlate.Key {
		t.Errorf("persona = %q, want %q", s.Persona.Key, persona.BlankSlate.Key)
	}
	if s.TemplateOverlap != 0 {
		t.Errorf("TemplateOverlap = %v, want 0", s.TemplateOverlap)
	}
	if s.Captaincy.SuccessRate != 0 {
		t.Errorf("SuccessRate = %v, want 0", s.Captaincy.SuccessRate)
	}
	if len(s.Chips) != 4 {
		t.Errorf("Chips len = %d, want 4", len(s.Chips))
	}
	if s.Grades.Overall != NoGrade || s.Grades.Transfers.Grade != NoGrade {
		t.Errorf("grades = %+v, want all %q", s.Grades, NoGrade)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	for _, key := range []string{"transfers", "top_contributors", "longest_holds", "data_warnings"} {
		if !strings.Contains(out, `"`+key+`":[]`) {
			t.Errorf("%s should marshal as an empty array: %s", key, out)
		}
	}
	if strings.Contains(out, `"records":null`) {
		t.Errorf("records must not be null: %s", out)
	}
}

func TestBuild_ZeroGameweeksIgnoresPendingActivity(t *testing.T) {
	b := seasontest.New()
	b.Transfer(2, 30, 31, time.Time{})
	b.Chip(season.TripleCaptain, 2)

	s := Build(b.Build(), DefaultOptions())

	if len(s.Transfers) != 0 || s.Totals.Transfers != 0 {
		t.Errorf("got %d transfer records, totals %d; want none", len(s.Transfers), s.Totals.Transfers)
	}
	for _, ch := range s.Chips {
		if ch.Used {
			t.Errorf("%s reported used in GW%d with no finished gameweeks", ch.Name, ch.Gameweek)
		}
	}
	if s.Grades.Chips.Grade != NoGrade {
		t.Errorf("chip grade = %q, want %q", s.Grades.Chips.Grade, NoGrade)
	}
	if s.Persona.Key != persona.BlankSlate.Key {
		t.Errorf("persona = %q, want %q", s.Persona.Key, persona.BlankSlate.Key)
	}
}

func TestBuild_ActivityAfterLastFinishedIgnored(t *testing.T) {
	want, err := json.Marshal(Build(fullSeason(), DefaultOptions()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	c := fullSeason()
	for gw := 11; gw <= 30; gw++ {
		at := seasontest.Deadline(gw).Add(-time.Hour)
		c.Transfers = append(c.Transfers,
			season.Transfer{ElementIn: 100 + gw, ElementOut: 1, Event: gw, Time: at},
			season.Transfer{ElementIn: 200 + gw, ElementOut: 2, Event: gw, Time: at})
	}
	c.Chips = append(c.Chips,
		season.ChipPlay{Name: season.TripleCaptain, Event: 15},
		season.ChipPlay{Name: season.Wildcard, Event: 20})
	logged := len(c.Transfers)

	got, err := json.Marshal(Build(c, DefaultOptions()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Errorf("transfers and chips past GW10 changed the summary")
	}
	if len(c.Transfers) != logged {
		t.Errorf("input context was modified: %d transfers, want %d", len(c.Transfers), logged)
	}
}

func TestBuild_DeterministicJSON(t *testing.T) {
	first, err := json.Marshal(Build(fullSeason(), DefaultOptions()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(Build(fullSeason(), DefaultOptions()))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d differs from the first", i)
		}
	}
}

func TestBuild_Totals(t *testing.T) {
	s := Build(fullSeason(), DefaultOptions())

	if s.Totals.Gameweeks != 10 {
		t.Errorf("Gameweeks = %d, want 10", s.Totals.Gameweeks)
	}
	// 45*10 + 3*(1+..+10)
	if s.Totals.Points != 615 {
		t.Errorf("Points = %d, want 615", s.Totals.Points)
	}
	if s.Totals.HitCost != 4 {
		t.Errorf("HitCost = %d, want 4", s.Totals.HitCost)
	}
	if s.Totals.Transfers != 2 || s.TransferTotals.Count != 2 {
		t.Errorf("transfers = %d/%d, want 2/2", s.Totals.Transfers, s.TransferTotals.Count)
	}
	if s.Totals.ChipsUsed != 1 {
		t.Errorf("ChipsUsed = %d, want 1", s.Totals.ChipsUsed)
	}
	// Points above 50 from GW2 (51) onwards.
	if s.Totals.AboveAverageWeeks != 9 {
		t.Errorf("AboveAverageWeeks = %d, want 9", s.Totals.AboveAverageWeeks)
	}
	if len(s.TopContributors) != topContributors {
		t.Errorf("TopContributors len = %d, want %d", len(s.TopContributors), topContributors)
	}
	if s.SquadValue.Archetype != ValueBuilder {
		t.Errorf("Archetype = %q, want %q", s.SquadValue.Archetype, ValueBuilder)
	}
}

func TestBuildRank(t *testing.T) {
	c := seasontest.New().
		Gameweek(1, season.GameweekHistory{OverallRank: 5000}, season.Event{}).
		Gameweek(2, season.GameweekHistory{OverallRank: 3000}, season.Event{}).
		Gameweek(3, season.GameweekHistory{OverallRank: 4000}, season.Event{}).
		Build()

	r := buildRank(c)

	if !r.Known || r.OverallRank != 4000 || r.BestRank != 3000 {
		t.Errorf("rank = %+v, want known, overall 4000, best 3000", r)
	}
	if r.Percentile != 0.04 {
		t.Errorf("Percentile = %v, want 0.04", r.Percentile)
	}
}

func TestBuildRank_Unknown(t *testing.T) {
	c := seasontest.New().Gameweek(1, season.GameweekHistory{}, season.Event{}).Build()
	if r := buildRank(c); r.Known || r.Percentile != 0 {
		t.Errorf("rank = %+v, want unknown", r)
	}
}

// ---------------------------------------------------------------------------
// Grades
// ---------------------------------------------------------------------------

func TestBuildGrades(t *testing.T) {
	totals := analysis.TransferTotals{Count: 2, GameweeksHeld: 4, NetGainAfterHit: 3}
	capt := analysis.CaptaincyReport{Records: make([]analysis.CaptaincyAnalysis, 3), TotalPointsLeft: 6}
	bench := analysis.BenchReport{Records: make([]analysis.BenchAnalysis, 6), TotalMissed: 30}
	chips := []analysis.ChipAnalysis{
		{Used: true, PointsGained: 25},
		{Used: true, PointsGained: 9},
		{Used: false, PointsGained: 100},
	}

	g := buildGrades(totals, capt, bench, chips)

	checks := []struct {
		name string
		got  DomainGrade
		want string
	}{
		{"transfers", g.Transfers, "B"},
		{"captaincy", g.Captaincy, "B"},
		{"bench", g.Bench, "F"},
		{"chips", g.Chips, "B"},
	}
	for _, c := range checks {
		if c.got.Grade != c.want {
			t.Errorf("%s grade = %q (measure %v), want %q", c.name, c.got.Grade, c.got.Measure, c.want)
		}
	}
	if g.Chips.Decisions != 2 || g.Chips.Measure != 17 {
		t.Errorf("chips = %+v, want 2 decisions at 17", g.Chips)
	}
	// (3+3+0+3)/4 = 2.25 rounds to C.
	if g.Overall != "C" {
		t.Errorf("Overall = %q, want C", g.Overall)
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := []struct {
		b    band
		v    float64
		want string
	}{
		{transferBands, 1.0, "A"},
		{transferBands, -0.5, "D"},
		{transferBands, -0.51, "F"},
		{captaincyBands, 1, "A"},
		{captaincyBands, 3.5, "C"},
		{captaincyBands, 5.01, "F"},
		{benchBands, 0, "A"},
		{benchBands, 4, "D"},
		{chipBands, 12, "B"},
		{chipBands, -1, "F"},
	}
	for _, c := range cases {
		if got := c.b.grade(c.v); got != c.want {
			t.Errorf("grade(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestOverall_SkipsUngraded(t *testing.T) {
	got := overall(DomainGrade{Grade: "A"}, DomainGrade{Grade: NoGrade}, DomainGrade{Grade: "C"})
	if got != "B" {
		t.Errorf("overall = %q, want B", got)
	}
	if got := overall(DomainGrade{Grade: NoGrade}); got != NoGrade {
		t.Errorf("overall = %q, want %q", got, NoGrade)
	}
}

// ---------------------------------------------------------------------------
// Contributors and squad value
// ---------------------------------------------------------------------------

func TestBuildContributors(t *testing.T) {
	c := seasontest.New().
		Player(1, "Salah", season.MID, 50).
		Player(2, "Haaland", season.FWD, 60).
		Player(12, "Bench", season.DEF, 5).
		Gameweek(1, season.GameweekHistory{}, season.Event{}).
		Squad(1, 1, squad...).
		Score(1, 1, 5).Score(1, 2, 10).Score(1, 12, 20).
		Build()

	got, pos := buildContributors(season.NewIndex(c))

	if len(got) != 11 {
		t.Fatalf("len = %d, want 11 starters", len(got))
	}
	if got[0].Element != 1 || got[0].Points != 10 {
		t.Errorf("first = %+v, want captain Salah with 10", got[0])
	}
	if got[1].Element != 2 || got[1].Points != 10 {
		t.Errorf("second = %+v, want Haaland with 10 on id tiebreak", got[1])
	}
	if got[0].Position != "MID" || got[0].Gameweeks != 1 {
		t.Errorf("first = %+v, want MID over 1 gameweek", got[0])
	}
	if pos.MID != 10 || pos.FWD != 10 || pos.DEF != 0 {
		t.Errorf("positions = %+v, want MID 10 FWD 10, bench excluded", pos)
	}
}

func TestBuildSquadValue(t *testing.T) {
	b := seasontest.New()
	for i, v := range []int{1000, 1040, 990, 1035} {
		b.Gameweek(i+1, season.GameweekHistory{Value: v, Bank: 5}, season.Event{})
	}

	got := buildSquadValue(b.Build())

	if got.Start != 1000 || got.End != 1035 || got.Peak != 1040 || got.Low != 990 {
		t.Errorf("trend = %+v", got)
	}
	if got.Change != 35 || got.Archetype != ValueBuilder {
		t.Errorf("change = %d %q, want 35 %q", got.Change, got.Archetype, ValueBuilder)
	}
	if len(got.Series) != 4 {
		t.Errorf("Series len = %d, want 4", len(got.Series))
	}
}

func TestValueArchetype(t *testing.T) {
	cases := map[int]string{30: ValueBuilder, 29: ValueClimber, 10: ValueClimber, 9: ValueSteady, -9: ValueSteady, -10: ValueBurner}
	for change, want := range cases {
		if got := valueArchetype(change); got != want {
			t.Errorf("valueArchetype(%d) = %q, want %q", change, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// WriteSummary
// ---------------------------------------------------------------------------

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary", "1.json")
	if err := WriteSummary(path, Build(fullSeason(), DefaultOptions())); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.HasSuffix(b, []byte("}\n")) {
		t.Error("output should end with a newline")
	}
	var back SeasonSummary
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.EntryID != 1 || back.Persona.Key == "" {
		t.Errorf("round trip lost fields: entry %d persona %q", back.EntryID, back.Persona.Key)
	}
}

// ---------------------------------------------------------------------------
// Form
// ---------------------------------------------------------------------------

func TestRecentForm(t *testing.T) {
	b := seasontest.New()
	for gw, pts := range []int{40, 50, 60, 70, 80, 90, 100} {
		b.Gameweek(gw+1, season.GameweekHistory{Points: pts}, season.Event{})
	}

	f := recentForm(b.Build(), 3)

	if len(f.Gameweeks) != 3 || f.Gameweeks[0] != 5 || f.Gameweeks[2] != 7 {
		t.Errorf("Gameweeks = %v, want [5 6 7]", f.Gameweeks)
	}
	if f.RecentAverage != 90 || f.SeasonAverage != 70 || f.Delta != 20 {
		t.Errorf("form = %+v, want recent 90 season 70 delta 20", f)
	}
}

func TestRecentForm_Empty(t *testing.T) {
	f := recentForm(seasontest.New().Build(), 0)
	if f.Window != formWindow || f.Gameweeks == nil || f.RecentAverage != 0 {
		t.Errorf("form = %+v, want default window and empty gameweeks", f)
	}
}
