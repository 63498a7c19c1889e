// Package expectation turns exact combination counts into expected frequencies.
package expectation

import (
	"math"

	"dicesim/pkg/combinatorics"
	"dicesim/pkg/dice"
)

// Probabilities returns P(sum) for every sum in [dice, dice*sides], ordered by sum.
func Probabilities(numDice, sides int) []float64 {
	r := dice.NewRange(numDice, sides)
	table := combinatorics.NewTable(numDice, sides)
	outcomes := math.Pow(float64(sides), float64(numDice))

	probs := make([]float64, r.Len())
	for sum := r.Min; sum <= r.Max; sum++ {
		probs[r.Index(sum)] = float64(table.Ways(numDice, sum)) / outcomes
	}
	return probs
}

// Expected returns probability(sum) * Trials for every achievable sum.
func Expected(p dice.Params) dice.ExpectedCounts {
	r := p.Range()
	counts := dice.NewExpectedCounts(r)
	trials := float64(p.Trials)
	for i, prob := range Probabilities(p.Dice, p.Sides) {
		counts.Set(r.Min+i, prob*trials)
	}
	return counts
}
