package persona

import (
	"fmt"

	"fpl-season-mcp/internal/analysis"
)

const (
	maxMoments      = 3
	bigTransferGain = 20
	bigTransferLoss = -15
	captainHaul     = 24
	captainMiss     = 10
	benchMiss       = 10
)

// Moments picks up to three headline decisions, checked in a fixed order:
// best transfer, worst transfer, captain haul, captain miss, bench miss,
// best chip.
func Moments(in Inputs) []string {
	out := make([]string, 0, maxMoments)
	add := func(s string) {
		if len(out) < maxMoments {
			out = append(out, s)
		}
	}

	var best, worst *analysis.TransferAnalysis
	for i := range in.Transfers {
		t := &in.Transfers[i]
		if best == nil || t.PointsGained > best.PointsGained {
			best = t
		}
		if worst == nil || t.PointsGained < worst.PointsGained {
			worst = t
		}
	}
	if best != nil && best.PointsGained >= bigTransferGain {
		add(fmt.Sprintf("Bringing in %s for %s in GW%d gained %d points.",
			best.PlayerIn, best.PlayerOut, best.Gameweek, best.PointsGained))
	}
	if worst != nil && worst.PointsGained <= bigTransferLoss {
		add(fmt.Sprintf("Swapping %s for %s in GW%d cost %d points.",
			worst.PlayerOut, worst.PlayerIn, worst.Gameweek, -worst.PointsGained))
	}

	var haul, miss *analysis.CaptaincyAnalysis
	for i := range in.Captaincy.Records {
		r := &in.Captaincy.Records[i]
		if haul == nil || r.Points > haul.Points {
			haul = r
		}
		if miss == nil || r.PointsLeftOnTable > miss.PointsLeftOnTable {
			miss = r
		}
	}
	if haul != nil && haul.Points >= captainHaul {
		add(fmt.Sprintf("Captaining %s in GW%d returned %d points.", haul.CaptainName, haul.Gameweek, haul.Points))
	}
	if miss != nil && miss.PointsLeftOnTable >= captainMiss {
		add(fmt.Sprintf("Captaining %s over %s in GW%d left %d points on the table.",
			miss.CaptainName, miss.BestName, miss.Gameweek, miss.PointsLeftOnTable))
	}

	var bench *analysis.BenchAnalysis
	for i := range in.Bench.Records {
		r := &in.Bench.Records[i]
		if bench == nil || r.MissedPoints > bench.MissedPoints {
			bench = r
		}
	}
	if bench != nil && bench.MissedPoints >= benchMiss {
		add(fmt.Sprintf("Benching %s in GW%d cost %d points.",
			in.Index.PlayerName(bench.BestBenchID), bench.Gameweek, bench.MissedPoints))
	}

	var chip *analysis.ChipAnalysis
	for i := range in.Chips {
		ch := &in.Chips[i]
		if !ch.Used || ch.Verdict != analysis.ChipExcellent {
			continue
		}
		if chip == nil || ch.PointsGained > chip.PointsGained {
			chip = ch
		}
	}
	if chip != nil {
		add(fmt.Sprintf("%s in GW%d earned %d points.", chip.Label, chip.Gameweek, chip.PointsGained))
	}
	return out
}
