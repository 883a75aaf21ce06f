package persona

// Facts is what boost rules and gates may read: metrics, signals, the
// season rank and chip usage.
type Facts struct {
	Metrics        Metrics
	Signals        Signals
	RankKnown      bool
	RankPercentile float64
	ChipsUsed      int
}

type Boost struct {
	Persona string
	Factor  float64
}

// BoostRule multiplies running scores when When holds. Scores passed to
// When already include every earlier rule.
type BoostRule struct {
	Name   string
	When   func(f Facts, scores map[string]float64) bool
	Boosts []Boost
}

func signal(k Signal) func(Facts, map[string]float64) bool {
	return func(f Facts, _ map[string]float64) bool { return f.Signals.Has(k) }
}

func metricAtLeast(k Metric, v float64) func(Facts, map[string]float64) bool {
	return func(f Facts, _ map[string]float64) bool { return f.Metrics.Get(k) >= v }
}

func rankBand(lo, hi float64) func(Facts, map[string]float64) bool {
	return func(f Facts, _ map[string]float64) bool {
		return f.RankKnown && f.RankPercentile > lo && f.RankPercentile <= hi
	}
}

// BoostRules apply in order.
var BoostRules = []BoostRule{
	{"hit_addict_tinkerer", func(f Facts, _ map[string]float64) bool {
		return f.Signals.Has(HitAddict) && f.Signals.Has(ConstantTinkerer)
	}, []Boost{{ChaosAgent, 2.2}, {Tinkerer, 1.7}}},
	{"hit_addict", func(f Facts, _ map[string]float64) bool {
		return f.Signals.Has(HitAddict) && !f.Signals.Has(ConstantTinkerer)
	}, []Boost{{ChaosAgent, 1.6}}},
	{"constant_tinkerer", func(f Facts, _ map[string]float64) bool {
		return f.Signals.Has(ConstantTinkerer) && !f.Signals.Has(HitAddict)
	}, []Boost{{Tinkerer, 1.5}}},
	{"disciplined", signal(Disciplined), []Boost{{Architect, 1.4}, {SetAndForget, 1.2}}},
	{"rotation_pain", signal(RotationPain), []Boost{{RotationGambler, 2.0}}},
	{"bench_master", signal(BenchMaster), []Boost{{Architect, 1.15}}},
	{"long_term_backer", signal(LongTermBacker), []Boost{{SetAndForget, 1.6}}},
	{"early_aggression", signal(EarlyAggression), []Boost{{Gambler, 1.3}}},
	{"chip_hoarder", signal(ChipHoarder), []Boost{{Hoarder, 2.0}}},
	{"boom_bust", signal(BoomBust), []Boost{{Gambler, 1.4}, {Maverick, 1.3}}},
	{"consistent", signal(Consistent), []Boost{{SteadyHand, 1.8}}},

	{"rank_top_1pct", rankBand(-1, 1), []Boost{{Mastermind, 3.0}}},
	{"rank_top_5pct", rankBand(1, 5), []Boost{{Mastermind, 1.8}}},
	{"rank_top_10pct", rankBand(5, 10), []Boost{{Mastermind, 1.3}}},

	{"captain_loyalist", signal(CaptainLoyalist), []Boost{{SteadyHand, 1.2}, {CaptainWhisperer, 1.2}}},
	{"captain_chaser", signal(CaptainChaser), []Boost{{Tinkerer, 1.2}}},
	{"differential_captain", signal(DifferentialCaptain), []Boost{{Maverick, 1.5}}},
	{"safe_captain", signal(SafeCaptain), []Boost{{Sheep, 1.4}}},

	{"panic_buyer", signal(PanicBuyer), []Boost{{Scrambler, 1.8}}},
	{"deadline_day", signal(DeadlineDayScrambler), []Boost{{Scrambler, 1.4}}},
	{"early_planner", signal(EarlyPlanner), []Boost{{EarlyBird, 1.8}}},
	{"knee_jerker", signal(KneeJerker), []Boost{{Tinkerer, 1.3}, {Scrambler, 1.2}}},
	{"late_night", signal(LateNightReactor), []Boost{{Scrambler, 1.3}}},

	{"chip_master", signal(ChipMaster), []Boost{{ChipWizard, 1.7}}},
	{"chip_gambler", signal(ChipGambler), []Boost{{Gambler, 1.6}}},
	{"strategic_chipper", signal(StrategicChipper), []Boost{{ChipWizard, 1.3}, {Architect, 1.2}}},
	{"contrarian", signal(Contrarian), []Boost{{Maverick, 1.4}}},
	{"template_chipper", signal(TemplateChipper), []Boost{{Sheep, 1.3}}},

	{"extreme_template", metricAtLeast(Template, 0.85), []Boost{{Sheep, 1.5}}},
	{"extreme_thrift", metricAtLeast(Thrift, 0.8), []Boost{{BargainHunter, 1.5}}},
	{"extreme_leadership", metricAtLeast(Leadership, 0.8), []Boost{{CaptainWhisperer, 1.6}}},
	{"extreme_activity", metricAtLeast(Activity, 0.9), []Boost{{Tinkerer, 1.3}}},
	{"extreme_patience", metricAtLeast(Patience, 0.9), []Boost{{SetAndForget, 1.3}}},
	{"extreme_efficiency", metricAtLeast(Efficiency, 0.9), []Boost{{Architect, 1.3}}},

	{"template_over_maverick", func(_ Facts, scores map[string]float64) bool {
		return scores[Sheep] > scores[Maverick]
	}, []Boost{{Maverick, 0.8}}},
}

// ApplyBoosts runs rules over scores in place and returns the names of the
// rules that fired.
func ApplyBoosts(rules []BoostRule, f Facts, scores map[string]float64) []string {
	fired := make([]string, 0, len(rules))
	for _, r := range rules {
		if !r.When(f, scores) {
			continue
		}
		for _, b := range r.Boosts {
			scores[b.Persona] *= b.Factor
		}
		fired = append(fired, r.Name)
	}
	return fired
}
