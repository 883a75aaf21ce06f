package summary

import (
	"math"

	"fpl-season-mcp/internal/analysis"
	"fpl-season-mcp/internal/mathutil"
)

// NoGrade marks a domain with no decisions to judge.
const NoGrade = "-"

type DomainGrade struct {
	Grade     string  `json:"grade"`
	Measure   float64 `json:"measure"`
	Decisions int     `json:"decisions"`
}

type Grades struct {
	Transfers DomainGrade `json:"transfers"`
	Captaincy DomainGrade `json:"captaincy"`
	Bench     DomainGrade `json:"bench"`
	Chips     DomainGrade `json:"chips"`
	Overall   string      `json:"overall"`
}

// band is a lower bound for higherIsBetter domains and an upper bound
// otherwise, listed A through D.
type band struct {
	higherIsBetter bool
	cuts           [4]float64
}

var (
	transferBands  = band{higherIsBetter: true, cuts: [4]float64{1.0, 0.5, 0, -0.5}}
	captaincyBands = band{cuts: [4]float64{1, 2, 3.5, 5}}
	benchBands     = band{cuts: [4]float64{0.5, 1.5, 2.5, 4}}
	chipBands      = band{higherIsBetter: true, cuts: [4]float64{20, 12, 6, 0}}
)

var letters = [5]string{"A", "B", "C", "D", "F"}

func (b band) grade(v float64) string {
	for i, cut := range b.cuts {
		if (b.higherIsBetter && v >= cut) || (!b.higherIsBetter && v <= cut) {
			return letters[i]
		}
	}
	return letters[4]
}

func gradeDomain(b band, sum float64, n int) DomainGrade {
	if n == 0 {
		return DomainGrade{Grade: NoGrade}
	}
	v := sum / float64(n)
	return DomainGrade{Grade: b.grade(v), Measure: mathutil.Round2(v), Decisions: n}
}

func buildGrades(totals analysis.TransferTotals, capt analysis.CaptaincyReport, bench analysis.BenchReport, chips []analysis.ChipAnalysis) Grades {
	g := Grades{
		Captaincy: gradeDomain(captaincyBands, float64(capt.TotalPointsLeft), len(capt.Records)),
		Bench:     gradeDomain(benchBands, float64(bench.TotalMissed), len(bench.Records)),
	}

	// Transfers are judged per gameweek held, not per transfer.
	g.Transfers = gradeDomain(transferBands, totals.NetGainAfterHit, totals.GameweeksHeld)
	g.Transfers.Decisions = totals.Count
	if totals.Count == 0 {
		g.Transfers = DomainGrade{Grade: NoGrade}
	}

	gained, used := 0, 0
	for _, ch := range chips {
		if ch.Used {
			gained += ch.PointsGained
			used++
		}
	}
	g.Chips = gradeDomain(chipBands, float64(gained), used)

	g.Overall = overall(g.Transfers, g.Captaincy, g.Bench, g.Chips)
	return g
}

// overall averages the graded domains on a 4 (A) to 0 (F) scale.
func overall(domains ...DomainGrade) string {
	sum, n := 0, 0
	for _, d := range domains {
		for i, l := range letters {
			if d.Grade == l {
				sum += 4 - i
				n++
			}
		}
	}
	if n == 0 {
		return NoGrade
	}
	avg := math.Round(float64(sum) / float64(n))
	return letters[4-int(avg)]
}
