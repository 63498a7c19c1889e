// Package fit scores observed dice sums against their theoretical expectation.
package fit

import (
	"fmt"

	"dicesim/pkg/dice"
)

// Result is a Pearson Chi-Squared score.
type Result struct {
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
}

// ChiSquared returns Σ (o-e)²/e over the shared range. Bins whose expected count is
// not positive are left out of the sum. Both containers must cover the same range.
func ChiSquared(observed dice.ObservedCounts, expected dice.ExpectedCounts) Result {
	r := expected.Range()
	if observed.Range() != r {
		panic(fmt.Sprintf("fit: observed range %v does not match expected range %v", observed.Range(), r))
	}

	var stat float64
	for sum := r.Min; sum <= r.Max; sum++ {
		e := expected.At(sum)
		if e <= 0 {
			continue
		}
		diff := float64(observed.At(sum)) - e
		stat += diff * diff / e
	}
	return Result{Statistic: stat, DegreesOfFreedom: r.DegreesOfFreedom()}
}
