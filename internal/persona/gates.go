package persona

// eligibility is each persona's hard entry requirement. Personas without an
// entry are always eligible.
var eligibility = map[string]func(f Facts) bool{
	ChaosAgent: func(f Facts) bool { return f.Metrics.Chaos >= 0.3 || f.Signals.Has(HitAddict) },
	Tinkerer:   func(f Facts) bool { return f.Metrics.Activity >= 0.4 },
	RotationGambler: func(f Facts) bool {
		return f.Metrics.Overthink > 0.70 && f.Metrics.Efficiency < 0.95
	},
	Sheep:    func(f Facts) bool { return f.Metrics.Template >= 0.55 },
	Maverick: func(f Facts) bool { return f.Metrics.Template <= 0.6 },
	SetAndForget: func(f Facts) bool {
		return f.Metrics.Activity <= 0.5 && (f.Metrics.Patience >= 0.4 || f.Signals.Has(LongTermBacker))
	},
	Architect:        func(f Facts) bool { return f.Metrics.Efficiency >= 0.5 },
	CaptainWhisperer: func(f Facts) bool { return f.Metrics.Leadership >= 0.6 },
	ChipWizard:       func(f Facts) bool { return f.ChipsUsed >= 2 && f.Metrics.ChipMastery >= 0.5 },
	Gambler:          func(f Facts) bool { return f.Metrics.ChipRisk >= 0.5 || f.Signals.Has(BoomBust) },
	BargainHunter:    func(f Facts) bool { return f.Metrics.Thrift >= 0.5 },
	EarlyBird:        func(f Facts) bool { return f.Metrics.Timing >= 0.6 || f.Signals.Has(EarlyPlanner) },
	Hoarder:          func(f Facts) bool { return f.Signals.Has(ChipHoarder) },
	Scrambler: func(f Facts) bool {
		return f.Signals.Has(PanicBuyer) || f.Signals.Has(DeadlineDayScrambler) ||
			f.Signals.Has(LateNightReactor) || f.Metrics.Timing <= 0.3
	},
	Mastermind: func(f Facts) bool { return f.RankKnown && f.RankPercentile <= 10 },
}

// dealBreakers remove a persona whose identity contradicts an extreme metric.
var dealBreakers = map[string]func(f Facts) bool{
	Sheep:            func(f Facts) bool { return f.Metrics.Template < 0.4 },
	Maverick:         func(f Facts) bool { return f.Metrics.Template > 0.75 },
	SetAndForget:     func(f Facts) bool { return f.Metrics.Activity > 0.7 },
	Tinkerer:         func(f Facts) bool { return f.Metrics.Activity < 0.2 },
	Architect:        func(f Facts) bool { return f.Metrics.Efficiency < 0.3 },
	CaptainWhisperer: func(f Facts) bool { return f.Metrics.Leadership < 0.4 },
	BargainHunter:    func(f Facts) bool { return f.Metrics.Thrift < 0.2 },
	ChaosAgent:       func(f Facts) bool { return f.Metrics.Chaos < 0.1 },
	SteadyHand:       func(f Facts) bool { return f.Metrics.Chaos > 0.8 },
}

func Eligible(key string, f Facts) bool {
	gate, ok := eligibility[key]
	return !ok || gate(f)
}

func Excluded(key string, f Facts) bool {
	rule, ok := dealBreakers[key]
	return ok && rule(f)
}
