// Package analysis grades a manager's individual decisions: transfers,
// captain picks, bench order and chip plays. Every analyzer is a pure
// function of a season.Index.
package analysis

import (
	"sort"
	"time"

	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/season"
)

type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictNeutral   Verdict = "neutral"
	VerdictPoor      Verdict = "poor"
	VerdictTerrible  Verdict = "terrible"
)

type TransferAnalysis struct {
	Gameweek        int       `json:"gameweek"`
	Time            time.Time `json:"time"`
	ElementIn       int       `json:"element_in"`
	ElementOut      int       `json:"element_out"`
	PlayerIn        string    `json:"player_in"`
	PlayerOut       string    `json:"player_out"`
	Wildcard        bool      `json:"wildcard"`
	PointsIn        int       `json:"points_in"`
	PointsOut       int       `json:"points_out"`
	PointsGained    int       `json:"points_gained"`
	GameweeksHeld   int       `json:"gameweeks_held"`
	Verdict         Verdict   `json:"verdict"`
	PPGDifferential float64   `json:"ppg_differential"`
	WinRate         float64   `json:"win_rate"`
	BestStreak      int       `json:"best_streak"`
	WorstStreak     int       `json:"worst_streak"`
	HitCost         float64   `json:"hit_cost"`
	NetGainAfterHit float64   `json:"net_gain_after_hit"`
}

type leg struct {
	t        season.Transfer
	hit      float64
	wildcard bool
}

// AnalyzeTransfers evaluates every transfer against the player it replaced.
// Free Hit transfers are skipped; Wildcard transfers are re-paired by
// position before evaluation.
func AnalyzeTransfers(ix *season.Index) []TransferAnalysis {
	c := ix.Context()
	fh := c.ChipEvent(season.FreeHit)
	wc := c.ChipEvent(season.Wildcard)

	nonChip := NonChipTransfersByGW(c)
	legs := make([]leg, 0, len(c.Transfers))
	var wcTransfers []season.Transfer
	for _, t := range c.Transfers {
		switch {
		case fh != 0 && t.Event == fh:
			continue
		case wc != 0 && t.Event == wc:
			wcTransfers = append(wcTransfers, t)
		default:
			hit := 0.0
			if n := nonChip[t.Event]; n > 0 {
				hit = float64(c.History[t.Event].EventTransfersCost) / float64(n)
			}
			legs = append(legs, leg{t: t, hit: hit})
		}
	}
	legs = append(legs, pairWildcard(ix, wcTransfers)...)

	sort.SliceStable(legs, func(i, j int) bool {
		a, b := legs[i].t, legs[j].t
		if a.Event != b.Event {
			return a.Event < b.Event
		}
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return a.ElementIn < b.ElementIn
	})

	out := make([]TransferAnalysis, 0, len(legs))
	for _, l := range legs {
		out = append(out, analyzeLeg(ix, l, fh))
	}
	return out
}

// NonChipTransfersByGW counts logged transfers per gameweek outside the
// Free Hit and Wildcard weeks.
func NonChipTransfersByGW(c *season.Context) map[int]int {
	fh := c.ChipEvent(season.FreeHit)
	wc := c.ChipEvent(season.Wildcard)
	out := make(map[int]int)
	for _, t := range c.Transfers {
		if (fh != 0 && t.Event == fh) || (wc != 0 && t.Event == wc) {
			continue
		}
		out[t.Event]++
	}
	return out
}

// pairWildcard groups wildcard ins and outs by position and pairs them
// oldest to newest. Legs left without a partner are dropped.
func pairWildcard(ix *season.Index, transfers []season.Transfer) []leg {
	if len(transfers) == 0 {
		return nil
	}
	type side struct {
		element int
		at      time.Time
	}
	ins := make(map[season.Position][]side)
	outs := make(map[season.Position][]side)
	for _, t := range transfers {
		pin, _ := ix.Player(t.ElementIn)
		pout, _ := ix.Player(t.ElementOut)
		ins[pin.Position] = append(ins[pin.Position], side{t.ElementIn, t.Time})
		outs[pout.Position] = append(outs[pout.Position], side{t.ElementOut, t.Time})
	}
	bySideOrder := func(s []side) {
		sort.SliceStable(s, func(i, j int) bool {
			if !s[i].at.Equal(s[j].at) {
				return s[i].at.Before(s[j].at)
			}
			return s[i].element < s[j].element
		})
	}

	event := transfers[0].Event
	var legs []leg
	for _, pos := range []season.Position{0, season.GK, season.DEF, season.MID, season.FWD} {
		in, out := ins[pos], outs[pos]
		bySideOrder(in)
		bySideOrder(out)
		for i := 0; i < len(in) && i < len(out); i++ {
			legs = append(legs, leg{
				t:        season.Transfer{ElementIn: in[i].element, ElementOut: out[i].element, Event: event, Time: in[i].at},
				wildcard: true,
			})
		}
	}
	return legs
}

func analyzeLeg(ix *season.Index, l leg, fh int) TransferAnalysis {
	c := ix.Context()
	t := l.t
	a := TransferAnalysis{
		Gameweek:   t.Event,
		Time:       t.Time,
		ElementIn:  t.ElementIn,
		ElementOut: t.ElementOut,
		PlayerIn:   ix.PlayerName(t.ElementIn),
		PlayerOut:  ix.PlayerName(t.ElementOut),
		Wildcard:   l.wildcard,
		HitCost:    mathutil.Round2(l.hit),
	}

	wins, run, lossRun := 0, 0, 0
	for _, gw := range c.Finished {
		if gw < t.Event || gw == fh || !ix.HasPicks(gw) {
			continue
		}
		if !ix.InSquad(gw, t.ElementIn) {
			if next, ok := ix.NextFinished(gw); ok && ix.InSquad(next, t.ElementIn) {
				continue
			}
			break
		}
		pin, pout := ix.Points(gw, t.ElementIn), ix.Points(gw, t.ElementOut)
		a.PointsIn += pin
		a.PointsOut += pout
		a.GameweeksHeld++
		switch {
		case pin > pout:
			wins++
			run++
			lossRun = 0
		case pin < pout:
			lossRun++
			run = 0
		default:
			run, lossRun = 0, 0
		}
		if run > a.BestStreak {
			a.BestStreak = run
		}
		if lossRun > a.WorstStreak {
			a.WorstStreak = lossRun
		}
	}

	a.PointsGained = a.PointsIn - a.PointsOut
	a.Verdict = transferVerdict(a.PointsGained)
	if a.GameweeksHeld > 0 {
		a.PPGDifferential = mathutil.Round2(float64(a.PointsGained) / float64(a.GameweeksHeld))
		a.WinRate = mathutil.Round2(100 * float64(wins) / float64(a.GameweeksHeld))
	}
	a.NetGainAfterHit = mathutil.Round2(float64(a.PointsGained) - l.hit)
	return a
}

func transferVerdict(gained int) Verdict {
	switch {
	case gained >= 20:
		return VerdictExcellent
	case gained >= 5:
		return VerdictGood
	case gained >= -5:
		return VerdictNeutral
	case gained >= -15:
		return VerdictPoor
	default:
		return VerdictTerrible
	}
}

// TransferTotals aggregates a season of transfer records.
type TransferTotals struct {
	Count           int     `json:"count"`
	PointsGained    int     `json:"points_gained"`
	GameweeksHeld   int     `json:"gameweeks_held"`
	HitCost         float64 `json:"hit_cost"`
	NetGainAfterHit float64 `json:"net_gain_after_hit"`
}

func Totals(records []TransferAnalysis) TransferTotals {
	var t TransferTotals
	for _, r := range records {
		t.Count++
		t.PointsGained += r.PointsGained
		t.GameweeksHeld += r.GameweeksHeld
		t.HitCost += r.HitCost
		t.NetGainAfterHit += r.NetGainAfterHit
	}
	t.HitCost = mathutil.Round2(t.HitCost)
	t.NetGainAfterHit = mathutil.Round2(t.NetGainAfterHit)
	return t
}
