// Package persona turns a season of decisions into bounded metrics and
// behavioral signals, and picks one archetype from a fixed catalog.
package persona

import (
	"math"
	"time"

	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/ledger"
	"fpl-season-mcp/internal/season"
)

// Metric names a key of Metrics as used in catalog weights.
type Metric string

const (
	Activity    Metric = "activity"
	Chaos       Metric = "chaos"
	Overthink   Metric = "overthink"
	Template    Metric = "template"
	Efficiency  Metric = "efficiency"
	Leadership  Metric = "leadership"
	Thrift      Metric = "thrift"
	Patience    Metric = "patience"
	Timing      Metric = "timing"
	ChipMastery Metric = "chip_mastery"
	ChipRisk    Metric = "chip_risk"
)

var metricOrder = []Metric{
	Activity, Chaos, Overthink, Template, Efficiency, Leadership,
	Thrift, Patience, Timing, ChipMastery, ChipRisk,
}

// Metrics are all in [0,1].
type Metrics struct {
	Activity    float64 `json:"activity"`
	Chaos       float64 `json:"chaos"`
	Overthink   float64 `json:"overthink"`
	Template    float64 `json:"template"`
	Efficiency  float64 `json:"efficiency"`
	Leadership  float64 `json:"leadership"`
	Thrift      float64 `json:"thrift"`
	Patience    float64 `json:"patience"`
	Timing      float64 `json:"timing"`
	ChipMastery float64 `json:"chip_mastery"`
	ChipRisk    float64 `json:"chip_risk"`
}

func (m Metrics) Get(k Metric) float64 {
	switch k {
	case Activity:
		return m.Activity
	case Chaos:
		return m.Chaos
	case Overthink:
		return m.Overthink
	case Template:
		return m.Template
	case Efficiency:
		return m.Efficiency
	case Leadership:
		return m.Leadership
	case Thrift:
		return m.Thrift
	case Patience:
		return m.Patience
	case Timing:
		return m.Timing
	case ChipMastery:
		return m.ChipMastery
	case ChipRisk:
		return m.ChipRisk
	}
	return 0
}

// Inputs is everything the persona stage reads. The analyzers must have run.
type Inputs struct {
	Index       *season.Index
	Transfers   []analysis.TransferAnalysis
	Captaincy   analysis.CaptaincyReport
	Bench       analysis.BenchReport
	Chips       []analysis.ChipAnalysis
	ChipProfile analysis.ChipProfile
	Ledger      *ledger.Ledger
}

const (
	activityScale   = 80.0
	chaosScale      = 30.0
	overthinkScale  = 15.0
	efficiencyScale = 15.0
	thriftCeiling   = 1040.0
	thriftScale     = 60.0
	longHoldGWs     = 10
	patienceScale   = 6.0
	earlyTransfer   = 24 * time.Hour
)

func Normalize(in Inputs, t Tuning) Metrics {
	c := in.Index.Context()

	transfers := 0
	for _, n := range analysis.NonChipTransfersByGW(c) {
		transfers += n
	}

	net := 0.0
	for _, r := range in.Transfers {
		net += r.NetGainAfterHit
	}

	m := Metrics{
		Activity:    clamp01(float64(transfers) / activityScale),
		Chaos:       clamp01(float64(TotalHitCost(c)) / chaosScale),
		Overthink:   clamp01(in.Bench.AvgBenchPoints / overthinkScale),
		Template:    TemplateOverlap(in.Index, t.TemplateOwnershipPct),
		Efficiency:  clamp01(net / efficiencyScale),
		Leadership:  clamp01(in.Captaincy.SuccessRate / 100),
		ChipMastery: clamp01(in.ChipProfile.Effectiveness),
		ChipRisk:    clamp01(in.ChipProfile.Risk),
		Timing:      0.5,
	}

	if h, ok := c.FinalHistory(); ok && h.Value > 0 {
		m.Thrift = clamp01((thriftCeiling - float64(h.Value)) / thriftScale)
	}
	if in.Ledger != nil {
		m.Patience = clamp01(float64(in.Ledger.LongHolds(longHoldGWs)) / patienceScale)
	}
	if mt := MeaningfulTransfers(c); len(mt) > 0 {
		early := 0
		for _, tr := range mt {
			if c.Events[tr.Event].Deadline.Sub(tr.Time) > earlyTransfer {
				early++
			}
		}
		m.Timing = float64(early) / float64(len(mt))
	}
	return m
}

// TotalHitCost sums transfer penalties over finished gameweeks.
func TotalHitCost(c *season.Context) int {
	total := 0
	for _, gw := range c.Finished {
		total += c.History[gw].EventTransfersCost
	}
	return total
}

// TemplateOverlap is the share of squad slots, over every finished gameweek
// with picks, filled by players owned by at least ownershipPct percent.
func TemplateOverlap(ix *season.Index, ownershipPct float64) float64 {
	c := ix.Context()
	slots, template := 0, 0
	for _, gw := range c.Finished {
		for _, p := range c.Picks[gw] {
			slots++
			if pl, ok := ix.Player(p.Element); ok && pl.OwnershipPct >= ownershipPct {
				template++
			}
		}
	}
	if slots == 0 {
		return 0
	}
	return float64(template) / float64(slots)
}

// MeaningfulTransfers are non-chip transfers with a timestamp and a known
// deadline, the population every timing measure is taken over.
func MeaningfulTransfers(c *season.Context) []season.Transfer {
	fh := c.ChipEvent(season.FreeHit)
	wc := c.ChipEvent(season.Wildcard)
	out := make([]season.Transfer, 0, len(c.Transfers))
	for _, t := range c.Transfers {
		if (fh != 0 && t.Event == fh) || (wc != 0 && t.Event == wc) {
			continue
		}
		if t.Time.IsZero() || c.Events[t.Event].Deadline.IsZero() {
			continue
		}
		out = append(out, t)
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
