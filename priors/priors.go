// Package priors owns the lifecycle of the prior hyperparameter object
// itself — sensible defaults and construction-time validation — as opposed
// to the model package, which evaluates log-densities against whatever
// hyperparameters it is given.
package priors

import (
	"fmt"

	"bitbucket.org/dtolpin/ptcop/model"
	"bitbucket.org/dtolpin/ptcop/ptcoperr"
)

// Default returns the reference hyperparameters: Beta(1,1) for floor and
// ceiling (uniform), Normal(0,1) for ec50, and a truncated Normal(1,1) for
// slope — the same defaults the reference implementation's Priors()
// constructor uses.
func Default() model.Priors {
	return model.Priors{
		FloorAlpha: 1, FloorBeta: 1,
		CeilingAlpha: 1, CeilingBeta: 1,
		EC50Mean: 0, EC50SD: 1,
		SlopeMean: 1, SlopeSD: 1,
	}
}

// Validate reports a construction-time error if any hyperparameter is
// outside its required domain: Beta shape parameters must be positive, and
// the two standard deviations must be positive.
func Validate(p model.Priors) error {
	if p.FloorAlpha <= 0 || p.FloorBeta <= 0 {
		return fmt.Errorf("%w: floor Beta shape parameters must be > 0, got alpha=%v beta=%v",
			ptcoperr.ErrInvalidBetaShape, p.FloorAlpha, p.FloorBeta)
	}
	if p.CeilingAlpha <= 0 || p.CeilingBeta <= 0 {
		return fmt.Errorf("%w: ceiling Beta shape parameters must be > 0, got alpha=%v beta=%v",
			ptcoperr.ErrInvalidBetaShape, p.CeilingAlpha, p.CeilingBeta)
	}
	if p.EC50SD <= 0 {
		return fmt.Errorf("%w: ec50_sd must be > 0, got %v", ptcoperr.ErrInvalidPriorSD, p.EC50SD)
	}
	if p.SlopeSD <= 0 {
		return fmt.Errorf("%w: slope_sd must be > 0, got %v", ptcoperr.ErrInvalidPriorSD, p.SlopeSD)
	}
	return nil
}
