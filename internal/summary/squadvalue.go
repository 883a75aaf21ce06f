package summary

import "fpl-season-mcp/internal/season"

// Archetypes by season value change, in tenths of a million.
const (
	ValueBuilder = "Value Builder"
	ValueClimber = "Value Climber"
	ValueSteady  = "Value Steady"
	ValueBurner  = "Value Burner"
)

type ValuePoint struct {
	Gameweek int `json:"gameweek"`
	Value    int `json:"value"`
	Bank     int `json:"bank"`
}

type SquadValueTrend struct {
	Start     int          `json:"start"`
	End       int          `json:"end"`
	Peak      int          `json:"peak"`
	Low       int          `json:"low"`
	Change    int          `json:"change"`
	Archetype string       `json:"archetype"`
	Series    []ValuePoint `json:"series"`
}

func buildSquadValue(c *season.Context) SquadValueTrend {
	t := SquadValueTrend{Series: make([]ValuePoint, 0, len(c.Finished))}
	for _, gw := range c.Finished {
		h, ok := c.History[gw]
		if !ok || h.Value <= 0 {
			continue
		}
		t.Series = append(t.Series, ValuePoint{Gameweek: gw, Value: h.Value, Bank: h.Bank})
		if len(t.Series) == 1 {
			t.Start, t.Peak, t.Low = h.Value, h.Value, h.Value
		}
		t.End = h.Value
		if h.Value > t.Peak {
			t.Peak = h.Value
		}
		if h.Value < t.Low {
			t.Low = h.Value
		}
	}
	t.Change = t.End - t.Start
	t.Archetype = valueArchetype(t.Change)
	return t
}

func valueArchetype(change int) string {
	switch {
	case change >= 30:
		return ValueBuilder
	case change >= 10:
		return ValueClimber
	case change <= -10:
		return ValueBurner
	default:
		return ValueSteady
	}
}
