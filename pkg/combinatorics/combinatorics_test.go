package combinatorics

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recursiveWays evaluates the recurrence directly.
func recursiveWays(dice, target, sides int) int64 {
	if dice == 0 {
		if target == 0 {
			return 1
		}
		return 0
	}
	if target < dice || target > dice*sides {
		return 0
	}
	var total int64
	for face := 1; face <= sides; face++ {
		total += recursiveWays(dice-1, target-face, sides)
	}
	return total
}

func TestWays_TwoD6(t *testing.T) {
	want := []int64{1, 2, 3, 4, 5, 6, 5, 4, 3, 2, 1}
	table := NewTable(2, 6)
	var total int64
	for sum := 2; sum <= 12; sum++ {
		got := table.Ways(2, sum)
		assert.Equal(t, want[sum-2], got, "sum %d", sum)
		total += got
	}
	assert.Equal(t, int64(36), total)
}

func TestWays_SingleDie(t *testing.T) {
	for _, sides := range []int{2, 6, 20, 100} {
		for k := -1; k <= sides+1; k++ {
			want := int64(0)
			if k >= 1 && k <= sides {
				want = 1
			}
			assert.Equal(t, want, Ways(1, k, sides), "1d%d sum %d", sides, k)
		}
	}
}

func TestWays_ZeroDice(t *testing.T) {
	assert.Equal(t, int64(1), Ways(0, 0, 6))
	assert.Equal(t, int64(0), Ways(0, 1, 6))
	assert.Equal(t, int64(0), Ways(0, -1, 6))
}

func TestWays_OutOfRange(t *testing.T) {
	table := NewTable(10, 100)
	for d := 1; d <= 10; d++ {
		assert.Zero(t, table.Ways(d, d-1))
		assert.Zero(t, table.Ways(d, d*100+1))
		assert.Zero(t, table.Ways(d, -5))
	}
	assert.Zero(t, table.Ways(11, 50), "beyond table")
	assert.Zero(t, table.Ways(-1, 0))
}

func TestWays_MatchesRecursion(t *testing.T) {
	for _, tc := range []struct{ dice, sides int }{
		{1, 2}, {2, 2}, {3, 4}, {4, 6}, {5, 3}, {3, 10}, {6, 6},
	} {
		table := NewTable(tc.dice, tc.sides)
		for d := 0; d <= tc.dice; d++ {
			for sum := -1; sum <= d*tc.sides+1; sum++ {
				require.Equal(t, recursiveWays(d, sum, tc.sides), table.Ways(d, sum),
					"%dd%d sum %d", d, tc.sides, sum)
			}
		}
	}
}

func TestWays_PartitionOutcomeSpace(t *testing.T) {
	for _, tc := range []struct{ dice, sides int }{
		{1, 6}, {2, 6}, {3, 6}, {5, 12}, {10, 2}, {10, 20}, {10, 100},
	} {
		table := NewTable(tc.dice, tc.sides)
		total := new(big.Int)
		for sum := tc.dice; sum <= tc.dice*tc.sides; sum++ {
			total.Add(total, big.NewInt(table.Ways(tc.dice, sum)))
		}
		assert.Zero(t, total.Cmp(Outcomes(tc.dice, tc.sides)), "%dd%d: %s", tc.dice, tc.sides, total)
	}
}

func TestWays_Symmetric(t *testing.T) {
	table := NewTable(7, 9)
	for sum := 7; sum <= 63; sum++ {
		assert.Equal(t, table.Ways(7, sum), table.Ways(7, 70-sum))
	}
}

func TestOutcomes(t *testing.T) {
	assert.Equal(t, "36", Outcomes(2, 6).String())
	assert.Equal(t, "100000000000000000000", Outcomes(10, 100).String())
	assert.Equal(t, "1", Outcomes(0, 6).String())
}
