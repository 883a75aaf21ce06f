// Package mathutil holds small numeric helpers shared by the analyzers.
package mathutil

import "math"

// Round2 rounds v to two decimal places, half away from zero. NaN and
// infinities become 0 so they never reach JSON output.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
