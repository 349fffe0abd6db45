// Package kernel implements the proposal kernel: a per-chain adaptive
// Gaussian random-walk proposer with one step size per parameter, boundary
// reflection for the bounded parameters, and periodic step-size adaptation
// toward a target acceptance rate.
package kernel

import (
	"math"

	"bitbucket.org/dtolpin/ptcop/model"
	"bitbucket.org/dtolpin/ptcop/rng"
)

// indices into the step-size vector, in the fixed parameter order
// (floor, ceiling, ec50, slope).
const (
	iFloor = iota
	iCeiling
	iEC50
	iSlope
	nParams
)

// Proposer holds the four step sizes and proposes new parameter vectors by
// perturbing each coordinate independently, reflecting bounded coordinates
// back into their domain.
type Proposer struct {
	Step [nParams]float64

	StepMin float64
	StepMax float64

	TargetAcceptance float64
}

// NewProposer builds a Proposer with every step size set to initialStep.
func NewProposer(initialStep, stepMin, stepMax, targetAcceptance float64) *Proposer {
	p := &Proposer{StepMin: stepMin, StepMax: stepMax, TargetAcceptance: targetAcceptance}
	for i := range p.Step {
		p.Step[i] = initialStep
	}
	return p
}

// Propose draws a new parameter vector around current, using src for every
// random draw. Draws happen in fixed parameter order (floor, ceiling, ec50,
// slope) so that the overall draw order of the sampler stays reproducible.
func (p *Proposer) Propose(current model.Params, src *rng.Source) model.Params {
	var proposed model.Params

	proposed.Floor = reflectUnitInterval(current.Floor + p.Step[iFloor]*src.Normal())
	proposed.Ceiling = reflectUnitInterval(current.Ceiling + p.Step[iCeiling]*src.Normal())
	proposed.EC50 = current.EC50 + p.Step[iEC50]*src.Normal()
	proposed.Slope = reflectPositive(current.Slope + p.Step[iSlope]*src.Normal())

	return proposed
}

// reflectUnitInterval folds a candidate back into (0, 1) by repeated
// reflection at the 0 and 1 boundaries. A candidate that lands exactly on a
// boundary is moved to the nearest representable value inside the interval.
func reflectUnitInterval(x float64) float64 {
	for x <= 0 || x >= 1 {
		if x <= 0 {
			x = -x
		}
		if x >= 1 {
			x = 2 - x
		}
		if x == 0 || x == 1 {
			return math.Nextafter(x, 0.5)
		}
	}
	return x
}

// reflectPositive folds a candidate back above 0 by repeated reflection at
// the 0 boundary. A candidate of exactly 0 becomes the smallest positive
// float64.
func reflectPositive(x float64) float64 {
	for x <= 0 {
		x = -x
		if x == 0 {
			return math.SmallestNonzeroFloat64
		}
	}
	return x
}

// Adapt rescales every step size toward the target acceptance rate:
// multiplied by 1.01 if the observed rate exceeds the target, by 0.99
// otherwise, then clamped to [StepMin, StepMax].
func (p *Proposer) Adapt(acceptanceRate float64) {
	scale := 0.99
	if acceptanceRate > p.TargetAcceptance {
		scale = 1.01
	}
	for i := range p.Step {
		s := p.Step[i] * scale
		if s < p.StepMin {
			s = p.StepMin
		}
		if s > p.StepMax {
			s = p.StepMax
		}
		p.Step[i] = s
	}
}
