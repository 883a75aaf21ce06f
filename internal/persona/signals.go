package persona

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/season"
)

type Signal string

const (
	ConstantTinkerer     Signal = "constant_tinkerer"
	HitAddict            Signal = "hit_addict"
	Disciplined          Signal = "disciplined"
	RotationPain         Signal = "rotation_pain"
	BenchMaster          Signal = "bench_master"
	LongTermBacker       Signal = "long_term_backer"
	EarlyAggression      Signal = "early_aggression"
	ChipHoarder          Signal = "chip_hoarder"
	BoomBust             Signal = "boom_bust"
	Consistent           Signal = "consistent"
	PanicBuyer           Signal = "panic_buyer"
	DeadlineDayScrambler Signal = "deadline_day_scrambler"
	EarlyPlanner         Signal = "early_planner"
	KneeJerker           Signal = "knee_jerker"
	LateNightReactor     Signal = "late_night_reactor"
	ChipMaster           Signal = "chip_master"
	ChipGambler          Signal = "chip_gambler"
	StrategicChipper     Signal = "strategic_chipper"
	Contrarian           Signal = "contrarian"
	TemplateChipper      Signal = "template_chipper"
	CaptainLoyalist      Signal = "captain_loyalist"
	CaptainChaser        Signal = "captain_chaser"
	DifferentialCaptain  Signal = "differential_captain"
	SafeCaptain          Signal = "safe_captain"
)

// AllSignals is the fixed detection and reporting order.
var AllSignals = []Signal{
	ConstantTinkerer, HitAddict, Disciplined, RotationPain, BenchMaster,
	LongTermBacker, EarlyAggression, ChipHoarder, BoomBust, Consistent,
	PanicBuyer, DeadlineDayScrambler, EarlyPlanner, KneeJerker, LateNightReactor,
	ChipMaster, ChipGambler, StrategicChipper, Contrarian, TemplateChipper,
	CaptainLoyalist, CaptainChaser, DifferentialCaptain, SafeCaptain,
}

// Signals is the set of triggered signals.
type Signals map[Signal]bool

func (s Signals) Has(k Signal) bool { return s[k] }

// Active lists triggered signals in AllSignals order.
func (s Signals) Active() []Signal {
	out := make([]Signal, 0, len(s))
	for _, k := range AllSignals {
		if s[k] {
			out = append(out, k)
		}
	}
	return out
}

// timingWindow is a share-of-transfers rule over meaningful transfers.
type timingWindow struct {
	signal   Signal
	minCount int
	minShare float64
	match    func(t season.Transfer, c *season.Context, loc *time.Location) bool
}

const minMeaningfulTransfers = 10

var timingWindows = []timingWindow{
	{PanicBuyer, 5, 0.30, func(t season.Transfer, c *season.Context, _ *time.Location) bool {
		return beforeDeadline(t, c) < 3*time.Hour
	}},
	{DeadlineDayScrambler, 5, 0.40, func(t season.Transfer, c *season.Context, _ *time.Location) bool {
		d := beforeDeadline(t, c)
		return d >= 3*time.Hour && d < 24*time.Hour
	}},
	{EarlyPlanner, 5, 0.40, func(t season.Transfer, c *season.Context, _ *time.Location) bool {
		return beforeDeadline(t, c) > 96*time.Hour
	}},
	{KneeJerker, 5, 0.35, func(t season.Transfer, c *season.Context, _ *time.Location) bool {
		prev := c.Events[t.Event-1].Deadline
		if prev.IsZero() {
			return false
		}
		d := t.Time.Sub(prev)
		return d >= 0 && d < 48*time.Hour
	}},
	{LateNightReactor, 4, 0.25, func(t season.Transfer, _ *season.Context, loc *time.Location) bool {
		h := t.Time.In(loc).Hour()
		return h >= 23 || h < 5
	}},
}

func beforeDeadline(t season.Transfer, c *season.Context) time.Duration {
	return c.Events[t.Event].Deadline.Sub(t.Time)
}

// DetectSignals evaluates every rule independently. Rules that need
// per-gameweek history stay false without it.
func DetectSignals(in Inputs, t Tuning) Signals {
	c := in.Index.Context()
	s := make(Signals, len(AllSignals))

	byGW := analysis.NonChipTransfersByGW(c)
	nonChip, busyWeeks := 0, 0
	for _, n := range byGW {
		nonChip += n
		if n >= 2 {
			busyWeeks++
		}
	}
	hits := TotalHitCost(c)
	s[ConstantTinkerer] = busyWeeks >= 8
	s[HitAddict] = hitStreak(c) >= 3
	s[Disciplined] = hits <= 2 && nonChip >= 20

	benchWeeks, bigBench := 0, 0
	for _, r := range in.Bench.Records {
		if r.BenchBoost {
			continue
		}
		benchWeeks++
		if r.BenchPoints >= 10 {
			bigBench++
		}
	}
	if benchWeeks > 0 {
		avg := in.Bench.AvgBenchPoints
		s[RotationPain] = avgSquadValue(c) >= 1020 && avg >= 9 && bigBench >= 5
		s[BenchMaster] = avg < 7 && bigBench <= 2
	}

	if in.Ledger != nil {
		s[LongTermBacker] = in.Ledger.LongHolds(longHoldGWs) >= 3
	}
	if wc := c.ChipEvent(season.Wildcard); wc > 0 && wc < 12 {
		s[EarlyAggression] = true
	}
	s[ChipHoarder] = chipHoarder(c)

	if scores := gameweekScores(c); len(scores) > 0 {
		sd := stat.PopStdDev(scores, nil)
		high, low := 0, 0
		for _, v := range scores {
			if v >= 70 {
				high++
			}
			if v < 40 {
				low++
			}
		}
		s[BoomBust] = sd > 18 && high >= 3 && low >= 3
		s[Consistent] = sd < 14 && high <= 2 && low <= 2
	}

	if mt := MeaningfulTransfers(c); len(mt) >= minMeaningfulTransfers {
		loc := t.location()
		for _, w := range timingWindows {
			n := 0
			for _, tr := range mt {
				if w.match(tr, c, loc) {
					n++
				}
			}
			s[w.signal] = n >= w.minCount && float64(n)/float64(len(mt)) >= w.minShare
		}
	}

	if p := in.ChipProfile; p.Used >= 1 {
		s[ChipMaster] = p.Effectiveness > 0.7
		s[ChipGambler] = p.Risk > 0.65
		s[StrategicChipper] = p.Strategic
		s[Contrarian] = p.Popularity < 0.3
		s[TemplateChipper] = p.Popularity > 0.7
	}

	captainPatterns(in.Captaincy, s)
	return s
}

// hitStreak is the longest run of consecutive finished gameweeks with a
// transfer penalty.
func hitStreak(c *season.Context) int {
	best, run := 0, 0
	for _, gw := range c.Finished {
		if c.History[gw].EventTransfersCost > 0 {
			run++
			if run > best {
				best = run
			}
			continue
		}
		run = 0
	}
	return best
}

func avgSquadValue(c *season.Context) float64 {
	sum, n := 0, 0
	for _, gw := range c.Finished {
		if v := c.History[gw].Value; v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func chipHoarder(c *season.Context) bool {
	if len(c.Chips) < 2 {
		return false
	}
	for _, ch := range c.Chips {
		if ch.Event <= 25 {
			return false
		}
	}
	return true
}

func gameweekScores(c *season.Context) []float64 {
	out := make([]float64, 0, len(c.Finished))
	for _, gw := range c.Finished {
		if h, ok := c.History[gw]; ok {
			out = append(out, float64(h.Points))
		}
	}
	return out
}

const minCaptainWeeks = 10

func captainPatterns(r analysis.CaptaincyReport, s Signals) {
	n := len(r.Records)
	if n == 0 {
		return
	}

	counts := make(map[int]int)
	top := 0
	chased := 0
	for i, rec := range r.Records {
		counts[rec.CaptainID]++
		if counts[rec.CaptainID] > top {
			top = counts[rec.CaptainID]
		}
		if i == 0 {
			continue
		}
		prev := r.Records[i-1]
		if prev.BestID != prev.CaptainID && rec.CaptainID == prev.BestID {
			chased++
		}
	}

	if n >= minCaptainWeeks {
		s[CaptainLoyalist] = float64(top)/float64(n) >= 0.5
		s[DifferentialCaptain] = r.HerdFactor < 0.3
		s[SafeCaptain] = r.HerdFactor >= 0.7
	}
	s[CaptainChaser] = chased >= 5 && float64(chased)/float64(n) >= 0.25
}
