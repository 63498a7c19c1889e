package dice

// ExpectedCounts holds the theoretical frequency of every sum in a Range.
type ExpectedCounts struct {
	rng    Range
	values []float64
}

// NewExpectedCounts allocates a zeroed container for r.
func NewExpectedCounts(r Range) ExpectedCounts {
	return ExpectedCounts{rng: r, values: make([]float64, r.Len())}
}

// Range returns the sums covered.
func (e ExpectedCounts) Range() Range { return e.rng }

// At returns the expected count for sum, or 0 outside the range.
func (e ExpectedCounts) At(sum int) float64 {
	if !e.rng.Contains(sum) {
		return 0
	}
	return e.values[e.rng.Index(sum)]
}

// Set stores the expected count for sum.
func (e ExpectedCounts) Set(sum int, v float64) {
	e.values[e.rng.Index(sum)] = v
}

// Total is the sum over all bins.
func (e ExpectedCounts) Total() float64 {
	var total float64
	for _, v := range e.values {
		total += v
	}
	return total
}

// Max is the largest expected count.
func (e ExpectedCounts) Max() float64 {
	var m float64
	for _, v := range e.values {
		if v > m {
			m = v
		}
	}
	return m
}

// Values returns a copy of the counts ordered from Range().Min.
func (e ExpectedCounts) Values() []float64 {
	out := make([]float64, len(e.values))
	copy(out, e.values)
	return out
}

// ObservedCounts tallies simulated sums over a Range.
type ObservedCounts struct {
	rng    Range
	counts []int64
}

// NewObservedCounts allocates a zeroed tally for r.
func NewObservedCounts(r Range) ObservedCounts {
	return ObservedCounts{rng: r, counts: make([]int64, r.Len())}
}

// Range returns the sums covered.
func (o ObservedCounts) Range() Range { return o.rng }

// Add records one trial landing on sum. It panics if sum is not achievable.
func (o ObservedCounts) Add(sum int) {
	o.counts[o.rng.Index(sum)]++
}

// At returns the tally for sum, or 0 outside the range.
func (o ObservedCounts) At(sum int) int64 {
	if !o.rng.Contains(sum) {
		return 0
	}
	return o.counts[o.rng.Index(sum)]
}

// Total is the number of recorded trials.
func (o ObservedCounts) Total() int64 {
	var total int64
	for _, c := range o.counts {
		total += c
	}
	return total
}

// Values returns a copy of the tallies ordered from Range().Min.
func (o ObservedCounts) Values() []int64 {
	out := make([]int64, len(o.counts))
	copy(out, o.counts)
	return out
}
