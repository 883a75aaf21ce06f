package persona

import (
	"sort"

	"fpl-season-mcp/internal/mathutil"
)

const (
	maxTraits        = 4
	traitMateriality = 0.10
)

type Trait struct {
	Metric       Metric  `json:"metric"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type ManagerPersona struct {
	Key           string      `json:"key"`
	Name          string      `json:"name"`
	Tagline       string      `json:"tagline"`
	Description   string      `json:"description"`
	Score         float64     `json:"score"`
	MatchStrength int         `json:"match_strength"`
	Traits        []Trait     `json:"traits"`
	Moments       []string    `json:"moments"`
	Signals       []Signal    `json:"signals"`
	Metrics       Metrics     `json:"metrics"`
	Boosts        []string    `json:"boosts"`
	Competitive   []Candidate `json:"competitive"`
	Fallback      string      `json:"fallback,omitempty"`
}

// Build runs the whole persona stage. Identical inputs always give an
// identical persona.
func Build(in Inputs, t Tuning) ManagerPersona {
	c := in.Index.Context()
	if len(c.Finished) == 0 {
		return fromDefinition(BlankSlate)
	}

	m := Normalize(in, t)
	s := DetectSignals(in, t)
	f := Facts{Metrics: m, Signals: s, ChipsUsed: in.ChipProfile.Used}
	if h, ok := c.FinalHistory(); ok && h.OverallRank > 0 && c.TotalPlayers > 0 {
		f.RankKnown = true
		f.RankPercentile = 100 * float64(h.OverallRank) / float64(c.TotalPlayers)
	}

	sel := Select(f, t)
	d, _ := Lookup(sel.Winner.Key)

	p := fromDefinition(d)
	p.Score = sel.Winner.Score
	p.MatchStrength = sel.Winner.MatchStrength
	p.Traits = Traits(d, m)
	p.Moments = Moments(in)
	p.Signals = s.Active()
	p.Metrics = roundMetrics(m)
	p.Boosts = sel.Boosts
	p.Competitive = sel.Competitive
	p.Fallback = sel.Fallback
	return p
}

func fromDefinition(d Definition) ManagerPersona {
	return ManagerPersona{
		Key:         d.Key,
		Name:        d.Name,
		Tagline:     d.Tagline,
		Description: d.Description,
		Traits:      []Trait{},
		Moments:     []string{},
		Signals:     []Signal{},
		Boosts:      []string{},
		Competitive: []Candidate{},
	}
}

// Traits are the persona's weighted metrics that contribute materially,
// strongest first.
func Traits(d Definition, m Metrics) []Trait {
	out := make([]Trait, 0, len(d.Weights))
	for _, w := range d.Weights {
		v := m.Get(w.Metric)
		if v*w.Weight <= traitMateriality {
			continue
		}
		out = append(out, Trait{
			Metric:       w.Metric,
			Value:        mathutil.Round2(v),
			Weight:       w.Weight,
			Contribution: mathutil.Round2(v * w.Weight),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Contribution > out[j].Contribution })
	if len(out) > maxTraits {
		out = out[:maxTraits]
	}
	return out
}

func roundMetrics(m Metrics) Metrics {
	return Metrics{
		Activity:    mathutil.Round2(m.Activity),
		Chaos:       mathutil.Round2(m.Chaos),
		Overthink:   mathutil.Round2(m.Overthink),
		Template:    mathutil.Round2(m.Template),
		Efficiency:  mathutil.Round2(m.Efficiency),
		Leadership:  mathutil.Round2(m.Leadership),
		Thrift:      mathutil.Round2(m.Thrift),
		Patience:    mathutil.Round2(m.Patience),
		Timing:      mathutil.Round2(m.Timing),
		ChipMastery: mathutil.Round2(m.ChipMastery),
		ChipRisk:    mathutil.Round2(m.ChipRisk),
	}
}
