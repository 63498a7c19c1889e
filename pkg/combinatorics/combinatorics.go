// Package combinatorics counts the ordered ways identical dice can reach a sum.
//
// The count obeys
//
//	ways(0, t, s) = 1 if t == 0, else 0
//	ways(d, t, s) = 0 if t < d or t > d*s
//	ways(d, t, s) = Σ_{f=1..s} ways(d-1, t-f, s)
//
// Table evaluates the recurrence bottom-up so the full 10 dice x 100 sides domain
// stays cheap; results are identical to evaluating it recursively.
package combinatorics

import (
	"math/big"

	"github.com/sirupsen/logrus"
)

// Table holds ways(d, t, sides) for every d in [0, MaxDice] and every reachable t.
type Table struct {
	sides   int
	maxDice int
	// rows[d][t] = ways(d, t, sides), t in [0, d*sides]
	rows [][]int64
}

// NewTable builds the table for up to maxDice dice with the given number of sides.
func NewTable(maxDice, sides int) *Table {
	if maxDice < 0 {
		maxDice = 0
	}
	t := &Table{sides: sides, maxDice: maxDice, rows: make([][]int64, maxDice+1)}
	t.rows[0] = []int64{1}
	if sides < 1 {
		for d := 1; d <= maxDice; d++ {
			t.rows[d] = []int64{}
		}
		return t
	}

	for d := 1; d <= maxDice; d++ {
		prev := t.rows[d-1]
		row := make([]int64, d*sides+1)
		// Sliding window over prev: row[s] = prev[s-1] + ... + prev[s-sides].
		var window int64
		for s := 1; s < len(row); s++ {
			if s-1 < len(prev) {
				window += prev[s-1]
			}
			if out := s - 1 - sides; out >= 0 && out < len(prev) {
				window -= prev[out]
			}
			row[s] = window
		}
		t.rows[d] = row
	}

	logrus.WithFields(logrus.Fields{
		"dice":  maxDice,
		"sides": sides,
	}).Debug("built combination table")
	return t
}

// Sides returns the side count the table was built for.
func (t *Table) Sides() int { return t.sides }

// Ways returns the number of ordered face sequences of dice dice summing to target.
// Arguments outside the table or the reachable range yield 0.
func (t *Table) Ways(dice, target int) int64 {
	if dice < 0 || dice > t.maxDice {
		return 0
	}
	if dice == 0 {
		if target == 0 {
			return 1
		}
		return 0
	}
	if target < dice || target > dice*t.sides {
		return 0
	}
	return t.rows[dice][target]
}

// Ways is a one-shot helper around NewTable.
func Ways(diceRemaining, target, sides int) int64 {
	if diceRemaining < 0 {
		return 0
	}
	return NewTable(diceRemaining, sides).Ways(diceRemaining, target)
}

// Outcomes returns sides^dice, the number of equally likely ordered rolls.
// It is exact; 100^10 does not fit in 64 bits.
func Outcomes(dice, sides int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(sides)), big.NewInt(int64(dice)), nil)
}
