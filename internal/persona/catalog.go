package persona

// Persona keys, in catalog order.
const (
	ChaosAgent       = "chaos_agent"
	Tinkerer         = "tinkerer"
	RotationGambler  = "rotation_gambler"
	Sheep            = "sheep"
	Maverick         = "maverick"
	SetAndForget     = "set_and_forget"
	Architect        = "architect"
	CaptainWhisperer = "captain_whisperer"
	ChipWizard       = "chip_wizard"
	Gambler          = "gambler"
	BargainHunter    = "bargain_hunter"
	EarlyBird        = "early_bird"
	Hoarder          = "hoarder"
	Scrambler        = "scrambler"
	Mastermind       = "mastermind"
	SteadyHand       = "steady_hand"
)

type Weight struct {
	Metric Metric  `json:"metric"`
	Weight float64 `json:"weight"`
}

// Definition is one archetype. Signals are the behaviors that make the
// archetype a stronger match when several are close on score.
type Definition struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Weights     []Weight `json:"weights"`
	Signals     []Signal `json:"signals"`
}

// BlankSlate is returned when there is nothing to classify.
var BlankSlate = Definition{
	Key:         "blank_slate",
	Name:        "The Blank Slate",
	Tagline:     "The season has not started yet.",
	Description: "No finished gameweeks, so no decisions to read. Check back after the first deadline.",
	Weights:     []Weight{},
	Signals:     []Signal{},
}

// Catalog order is the final tie-break.
var Catalog = []Definition{
	{
		Key:         ChaosAgent,
		Name:        "The Chaos Agent",
		Tagline:     "Points hits are just the cost of doing business.",
		Description: "Takes hits freely and rebuilds on instinct. Seasons swing hard in both directions.",
		Weights:     []Weight{{Chaos, 0.6}, {Activity, 0.4}},
		Signals:     []Signal{HitAddict, ConstantTinkerer, BoomBust},
	},
	{
		Key:         Tinkerer,
		Name:        "The Tinkerer",
		Tagline:     "There is always one more move to make.",
		Description: "Uses every free transfer and then some. Rarely lets a squad settle for long.",
		Weights:     []Weight{{Activity, 0.7}, {Overthink, 0.2}},
		Signals:     []Signal{ConstantTinkerer, KneeJerker, CaptainChaser},
	},
	{
		Key:         RotationGambler,
		Name:        "The Rotation Gambler",
		Tagline:     "The bench outscored the forwards again.",
		Description: "Carries an expensive, deep bench and keeps guessing the wrong starters. The points are in the squad, just not on the pitch.",
		Weights:     []Weight{{Overthink, 0.7}, {Activity, 0.2}, {Efficiency, 0.1}},
		Signals:     []Signal{RotationPain},
	},
	{
		Key:         Sheep,
		Name:        "The Template Sheep",
		Tagline:     "If everyone owns him, so do I.",
		Description: "Builds around the most-owned players and the popular captain. Rarely wins a mini-league by a mile, rarely loses one either.",
		Weights:     []Weight{{Template, 0.8}, {Leadership, 0.2}},
		Signals:     []Signal{SafeCaptain, TemplateChipper},
	},
	{
		Key:         Maverick,
		Name:        "The Maverick",
		Tagline:     "Ownership is a number, not a reason.",
		Description: "Backs differentials in the squad, with the armband and with chips. When it lands, it lands big.",
		Weights:     []Weight{{Efficiency, 0.3}, {ChipRisk, 0.3}, {Leadership, 0.2}, {Activity, 0.2}},
		Signals:     []Signal{DifferentialCaptain, Contrarian},
	},
	{
		Key:         SetAndForget,
		Name:        "The Set-and-Forget",
		Tagline:     "Picked a team in August and trusted it.",
		Description: "Few transfers, long holds, no panic. The squad ages gracefully or not at all.",
		Weights:     []Weight{{Patience, 0.7}, {Thrift, 0.1}},
		Signals:     []Signal{LongTermBacker, Disciplined},
	},
	{
		Key:         Architect,
		Name:        "The Architect",
		Tagline:     "Every move is part of a plan.",
		Description: "Transfers that pay off, made on time, with chips played where they count. Hits are rare and deliberate.",
		Weights:     []Weight{{Efficiency, 0.5}, {Timing, 0.3}, {ChipMastery, 0.3}},
		Signals:     []Signal{Disciplined, BenchMaster, StrategicChipper},
	},
	{
		Key:         CaptainWhisperer,
		Name:        "The Captain Whisperer",
		Tagline:     "Knows who will haul before they do.",
		Description: "Puts the armband on the top scorer week after week. Captaincy is where this season was won.",
		Weights:     []Weight{{Leadership, 0.8}, {Efficiency, 0.2}},
		Signals:     []Signal{CaptainLoyalist},
	},
	{
		Key:         ChipWizard,
		Name:        "The Chip Wizard",
		Tagline:     "Timing the chips is the whole game.",
		Description: "Saves chips for the right week and gets paid for it. Double gameweeks are circled in red.",
		Weights:     []Weight{{ChipMastery, 0.8}, {Timing, 0.2}},
		Signals:     []Signal{ChipMaster, StrategicChipper},
	},
	{
		Key:         Gambler,
		Name:        "The Gambler",
		Tagline:     "Fortune favours the bold. Sometimes.",
		Description: "Triple captains the punt and wildcards early. The season is a string of big bets.",
		Weights:     []Weight{{ChipRisk, 0.7}, {Chaos, 0.3}},
		Signals:     []Signal{ChipGambler, EarlyAggression, BoomBust},
	},
	{
		Key:         BargainHunter,
		Name:        "The Bargain Hunter",
		Tagline:     "Why pay for premiums?",
		Description: "Runs a lean squad built on budget picks and value, happy to leave money in the bank.",
		Weights:     []Weight{{Thrift, 0.8}, {Efficiency, 0.2}},
		Signals:     []Signal{},
	},
	{
		Key:         EarlyBird,
		Name:        "The Early Bird",
		Tagline:     "Transfers done by Tuesday.",
		Description: "Moves early, well before the deadline, and lives with the injury news that follows.",
		Weights:     []Weight{{Timing, 0.8}, {Patience, 0.2}},
		Signals:     []Signal{EarlyPlanner},
	},
	{
		Key:         Hoarder,
		Name:        "The Chip Hoarder",
		Tagline:     "Saving them for the perfect week.",
		Description: "Holds every chip deep into the season and plays them late, if at all.",
		Weights:     []Weight{{Patience, 0.4}, {ChipMastery, 0.2}},
		Signals:     []Signal{ChipHoarder},
	},
	{
		Key:         Scrambler,
		Name:        "The Deadline Scrambler",
		Tagline:     "Press conferences are the real deadline.",
		Description: "Waits for the final team news and moves in the last hours, sometimes in the small hours.",
		Weights:     []Weight{{Activity, 0.5}, {Chaos, 0.3}},
		Signals:     []Signal{PanicBuyer, DeadlineDayScrambler, LateNightReactor},
	},
	{
		Key:         Mastermind,
		Name:        "The Mastermind",
		Tagline:     "Top of the world rankings is a habit.",
		Description: "Elite rank built on good transfers, sharp captaincy and well-timed chips.",
		Weights:     []Weight{{Efficiency, 0.4}, {Leadership, 0.4}, {ChipMastery, 0.2}},
		Signals:     []Signal{},
	},
	{
		Key:         SteadyHand,
		Name:        "The Steady Hand",
		Tagline:     "No drama, just points.",
		Description: "Sensible captains, a settled squad and few bad weeks. Consistency over fireworks.",
		Weights:     []Weight{{Leadership, 0.3}, {Patience, 0.3}, {Efficiency, 0.3}},
		Signals:     []Signal{Consistent, CaptainLoyalist},
	},
}

var catalogIndex = func() map[string]int {
	m := make(map[string]int, len(Catalog))
	for i, d := range Catalog {
		m[d.Key] = i
	}
	return m
}()

// Lookup returns the catalog entry for key, or BlankSlate.
func Lookup(key string) (Definition, bool) {
	if i, ok := catalogIndex[key]; ok {
		return Catalog[i], true
	}
	if key == BlankSlate.Key {
		return BlankSlate, true
	}
	return Definition{}, false
}
