// Package sampler runs the Monte Carlo side of the simulation.
package sampler

import (
	"github.com/sirupsen/logrus"

	"dicesim/pkg/dice"
)

// heartbeat is how many trials pass between progress logs.
const heartbeat = 1 << 20

// Simulate rolls p.Dice dice p.Trials times from src and tallies each sum.
// src is used as-is and never reseeded.
func Simulate(p dice.Params, src dice.Source) dice.ObservedCounts {
	observed := dice.NewObservedCounts(p.Range())
	for i := int64(0); i < p.Trials; i++ {
		sum := 0
		for j := 0; j < p.Dice; j++ {
			sum += dice.Face(src, p.Sides)
		}
		observed.Add(sum)

		if done := i + 1; done%heartbeat == 0 {
			logrus.WithFields(logrus.Fields{
				"done":  done,
				"total": p.Trials,
			}).Debug("sampling progress")
		}
	}
	return observed
}
