package analysis

import (
	"sort"

	"fpl-season-mcp/internal/mathutil"
	"fpl-season-mcp/internal/season"
)

// ChipProfile condenses chip usage into the scores the persona signals read.
type ChipProfile struct {
	Used          int     `json:"used"`
	Effectiveness float64 `json:"effectiveness"`
	Risk          float64 `json:"risk"`
	Popularity    float64 `json:"popularity"`
	Strategic     bool    `json:"strategic"`
}

func ProfileChips(ix *season.Index, chips []ChipAnalysis) ChipProfile {
	c := ix.Context()
	var p ChipProfile
	var eff, risk, pop float64
	popN := 0
	gws := make([]int, 0, len(chips))

	peak := make(map[season.ChipName]int, len(season.Chips))
	for _, ev := range c.Events {
		for name, n := range ev.ChipPlays {
			if n > peak[name] {
				peak[name] = n
			}
		}
	}

	for _, ch := range chips {
		if !ch.Used {
			continue
		}
		p.Used++
		gws = append(gws, ch.Gameweek)
		switch ch.Verdict {
		case ChipExcellent:
			eff += 1
		case ChipDecent:
			eff += 0.5
		}
		risk += chipRisk(ix, ch)
		if pk := peak[ch.Name]; pk > 0 {
			pop += float64(c.Events[ch.Gameweek].ChipPlays[ch.Name]) / float64(pk)
			popN++
		}
	}
	if p.Used == 0 {
		p.Popularity = 0.5
		return p
	}

	p.Effectiveness = mathutil.Round2(eff / float64(p.Used))
	p.Risk = mathutil.Round2(risk / float64(p.Used))
	p.Popularity = 0.5
	if popN > 0 {
		p.Popularity = mathutil.Round2(pop / float64(popN))
	}

	sort.Ints(gws)
	spaced := true
	for i := 1; i < len(gws); i++ {
		if gws[i]-gws[i-1] <= 1 {
			spaced = false
		}
	}
	p.Strategic = p.Used >= 3 && spaced && p.Effectiveness >= 0.5
	return p
}

func chipRisk(ix *season.Index, ch ChipAnalysis) float64 {
	switch ch.Name {
	case season.TripleCaptain:
		capt, ok := ix.Captain(ch.Gameweek)
		if !ok {
			return 0.3
		}
		own := ownership(ix, capt.Element)
		switch {
		case own < 15:
			return 0.9
		case own < 30:
			return 0.6
		default:
			return 0.3
		}
	case season.BenchBoost:
		bench := ix.Bench(ch.Gameweek)
		if len(bench) == 0 {
			return 0.4
		}
		sum := 0.0
		for _, b := range bench {
			sum += ownership(ix, b.Element)
		}
		if sum/float64(len(bench)) < 10 {
			return 0.8
		}
		return 0.4
	case season.FreeHit:
		if ch.Gameweek < 20 {
			return 0.7
		}
		return 0.4
	case season.Wildcard:
		if ch.Gameweek < 12 {
			return 0.8
		}
		return 0.3
	}
	return 0
}

func ownership(ix *season.Index, element int) float64 {
	p, ok := ix.Player(element)
	if !ok {
		return 0
	}
	return p.OwnershipPct
}
