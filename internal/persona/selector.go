package persona

import (
	"sort"
	"time"

	"fpl-season-mcp/internal/mathutil"
)

// Tuning holds the empirically chosen constants that are allowed to vary
// between deployments.
type Tuning struct {
	// CompetitiveRatio is the share of the top score a candidate needs to
	// stay in the tie-break.
	CompetitiveRatio float64
	// TemplateOwnershipPct is the ownership a player needs to count as template.
	TemplateOwnershipPct float64
	// Location is used for the late-night signal.
	Location *time.Location
}

func DefaultTuning() Tuning {
	return Tuning{CompetitiveRatio: 0.90, TemplateOwnershipPct: 15, Location: time.UTC}
}

func (t Tuning) location() *time.Location {
	if t.Location == nil {
		return time.UTC
	}
	return t.Location
}

func (t Tuning) ratio() float64 {
	if t.CompetitiveRatio <= 0 || t.CompetitiveRatio > 1 {
		return DefaultTuning().CompetitiveRatio
	}
	return t.CompetitiveRatio
}

type Candidate struct {
	Key           string  `json:"key"`
	Base          float64 `json:"base"`
	Score         float64 `json:"score"`
	MatchStrength int     `json:"match_strength"`
}

type Selection struct {
	Winner      Candidate   `json:"winner"`
	Competitive []Candidate `json:"competitive"`
	Boosts      []string    `json:"boosts"`
	// Fallback is "gates" when no persona passed eligibility and
	// "deal_breakers" when deal-breakers emptied the gated set.
	Fallback string `json:"fallback,omitempty"`
}

// Select scores the catalog, applies boosts, filters and breaks ties. It
// never returns an empty winner.
func Select(f Facts, t Tuning) Selection {
	scores := make(map[string]float64, len(Catalog))
	base := make(map[string]float64, len(Catalog))
	for _, d := range Catalog {
		s := 0.0
		for _, w := range d.Weights {
			s += f.Metrics.Get(w.Metric) * w.Weight * 100
		}
		scores[d.Key] = s
		base[d.Key] = s
	}

	sel := Selection{Boosts: ApplyBoosts(BoostRules, f, scores)}

	gated := make([]Definition, 0, len(Catalog))
	for _, d := range Catalog {
		if Eligible(d.Key, f) {
			gated = append(gated, d)
		}
	}
	if len(gated) == 0 {
		gated = Catalog
		sel.Fallback = "gates"
	}

	pool := make([]Definition, 0, len(gated))
	for _, d := range gated {
		if !Excluded(d.Key, f) {
			pool = append(pool, d)
		}
	}
	if len(pool) == 0 {
		pool = gated
		sel.Fallback = "deal_breakers"
	}

	cands := make([]Candidate, 0, len(pool))
	for _, d := range pool {
		cands = append(cands, Candidate{Key: d.Key, Base: mathutil.Round2(base[d.Key]), Score: scores[d.Key]})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })

	cut := cands[0].Score * t.ratio()
	competitive := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Score >= cut {
			competitive = append(competitive, c)
		}
	}

	if len(competitive) > 1 {
		for i := range competitive {
			d, _ := Lookup(competitive[i].Key)
			competitive[i].MatchStrength = MatchStrength(d, f)
		}
		sort.SliceStable(competitive, func(i, j int) bool {
			a, b := competitive[i], competitive[j]
			if a.MatchStrength != b.MatchStrength {
				return a.MatchStrength > b.MatchStrength
			}
			return a.Score > b.Score
		})
	}

	for i := range competitive {
		competitive[i].Score = mathutil.Round2(competitive[i].Score)
	}
	sel.Winner = competitive[0]
	sel.Competitive = competitive
	return sel
}

// MatchStrength is 2 per active signal the persona lists, plus 1 for each
// heavily weighted metric at 0.85 or above (2 at 0.95 or above).
func MatchStrength(d Definition, f Facts) int {
	n := 0
	for _, s := range d.Signals {
		if f.Signals.Has(s) {
			n += 2
		}
	}
	for _, w := range d.Weights {
		if w.Weight < 0.5 {
			continue
		}
		switch v := f.Metrics.Get(w.Metric); {
		case v >= 0.95:
			n += 2
		case v >= 0.85:
			n++
		}
	}
	return n
}
