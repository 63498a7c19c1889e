package dice

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Parameter bounds accepted by the simulator.
const (
	MinDice   = 1
	MaxDice   = 10
	MinSides  = 2
	MaxSides  = 100
	MinTrials = 1
)

// ErrInvalidParams wraps every bound violation reported by Params.Validate.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params describes one simulation run: roll Dice dice with Sides faces, Trials times.
type Params struct {
	Dice   int   `json:"dice"`
	Sides  int   `json:"sides"`
	Trials int64 `json:"trials"`
}

// Validate reports every bound the parameters violate.
func (p Params) Validate() error {
	var result *multierror.Error
	if p.Dice < MinDice || p.Dice > MaxDice {
		result = multierror.Append(result, fmt.Errorf("%w: dice must be between %d and %d, got %d", ErrInvalidParams, MinDice, MaxDice, p.Dice))
	}
	if p.Sides < MinSides || p.Sides > MaxSides {
		result = multierror.Append(result, fmt.Errorf("%w: sides must be between %d and %d, got %d", ErrInvalidParams, MinSides, MaxSides, p.Sides))
	}
	if p.Trials < MinTrials {
		result = multierror.Append(result, fmt.Errorf("%w: trials must be at least %d, got %d", ErrInvalidParams, MinTrials, p.Trials))
	}
	return result.ErrorOrNil()
}

// Range returns the achievable sums of the roll.
func (p Params) Range() Range {
	return NewRange(p.Dice, p.Sides)
}

func (p Params) String() string {
	return fmt.Sprintf("%dd%d x %d", p.Dice, p.Sides, p.Trials)
}

// Range is the inclusive interval [Min, Max] of achievable sums.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// NewRange returns [dice, dice*sides].
func NewRange(dice, sides int) Range {
	return Range{Min: dice, Max: dice * sides}
}

// Len is the number of sums in the range.
func (r Range) Len() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Contains reports whether sum is achievable.
func (r Range) Contains(sum int) bool {
	return sum >= r.Min && sum <= r.Max
}

// Index maps sum to a zero-based offset. It panics on sums outside the range.
func (r Range) Index(sum int) int {
	if !r.Contains(sum) {
		panic(fmt.Sprintf("dice: sum %d outside range [%d, %d]", sum, r.Min, r.Max))
	}
	return sum - r.Min
}

// DegreesOfFreedom is the number of bins minus one.
func (r Range) DegreesOfFreedom() int {
	return r.Max - r.Min
}
