// Package simulation wires the expectation model, the sampler and the evaluator
// into a single run.
package simulation

import (
	"time"

	"github.com/sirupsen/logrus"

	"dicesim/pkg/dice"
	"dicesim/pkg/expectation"
	"dicesim/pkg/fit"
	"dicesim/pkg/random"
	"dicesim/pkg/sampler"
)

// Result is everything a reporter needs from one run.
type Result struct {
	Params   dice.Params
	Seed     int64
	Expected dice.ExpectedCounts
	Observed dice.ObservedCounts
	Fit      fit.Result
	Elapsed  time.Duration
}

// Range returns the sums covered by the result.
func (r *Result) Range() dice.Range {
	return r.Params.Range()
}

// Run validates p, computes the expected counts, samples the observed counts from src
// and scores the fit.
func Run(p dice.Params, src dice.Source) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{
		"dice":   p.Dice,
		"sides":  p.Sides,
		"trials": p.Trials,
	})
	start := time.Now()

	log.Debug("calculating theoretical probabilities")
	expected := expectation.Expected(p)

	log.Debug("running simulation")
	observed := sampler.Simulate(p, src)

	res := &Result{
		Params:   p,
		Expected: expected,
		Observed: observed,
		Fit:      fit.ChiSquared(observed, expected),
		Elapsed:  time.Since(start),
	}
	log.WithFields(logrus.Fields{
		"chi_squared": res.Fit.Statistic,
		"dof":         res.Fit.DegreesOfFreedom,
		"elapsed":     res.Elapsed,
	}).Info("simulation finished")
	return res, nil
}

// RunSeeded runs p against a source seeded with seed and records the seed.
func RunSeeded(p dice.Params, seed int64) (*Result, error) {
	res, err := Run(p, random.NewSource(seed))
	if err != nil {
		return nil, err
	}
	res.Seed = seed
	return res, nil
}
