// Package config centralizes the sampler's reference constants as a
// validated configuration struct, so that SPEC_FULL.md's reference
// configuration (K=15, T_max=10, swap every 10, adapt every 50, ...) is
// one named value instead of scattered literals.
package config

import (
	"fmt"

	"bitbucket.org/dtolpin/ptcop/ptcoperr"
)

// Config holds everything about the ensemble's shape and proposal tuning
// that is fixed for the lifetime of a run.
type Config struct {
	// Chains is the ensemble size K.
	Chains int
	// MaxTemperature is T_max, the hottest chain's inverse-temperature weight.
	MaxTemperature float64
	// SwapEvery is the iteration cadence at which a replica swap is attempted.
	SwapEvery int
	// AdaptEvery is the step cadence at which proposal step sizes adapt.
	AdaptEvery int
	// TargetAcceptance is the acceptance rate the proposal adaptation aims for.
	TargetAcceptance float64
	// StepMin and StepMax bound every per-parameter step size.
	StepMin, StepMax float64
	// InitialStep is the step size every chain starts with.
	InitialStep float64
	// ACFLagCap bounds the autocorrelation lag considered by ESS.
	ACFLagCap int
}

// Default returns the reference configuration from SPEC_FULL.md §6.
func Default() Config {
	return Config{
		Chains:           15,
		MaxTemperature:   10,
		SwapEvery:        10,
		AdaptEvery:       50,
		TargetAcceptance: 0.234,
		StepMin:          0.001,
		StepMax:          1.0,
		InitialStep:      0.1,
		ACFLagCap:        100,
	}
}

// Validate reports a construction-time error if the ladder/proposal
// configuration itself is malformed. This runs before any dataset or prior
// validation, so a misconfigured ladder is reported distinctly.
func (c Config) Validate() error {
	if c.Chains < 1 {
		return fmt.Errorf("%w: Chains must be >= 1, got %d", ptcoperr.ErrInvalidChainCount, c.Chains)
	}
	if c.MaxTemperature <= 1 && c.Chains > 1 {
		return fmt.Errorf("%w: MaxTemperature must be > 1 for a multi-chain ladder, got %v",
			ptcoperr.ErrInvalidLadder, c.MaxTemperature)
	}
	if c.SwapEvery < 1 {
		return fmt.Errorf("%w: SwapEvery must be >= 1, got %d", ptcoperr.ErrInvalidLadder, c.SwapEvery)
	}
	if c.AdaptEvery < 1 {
		return fmt.Errorf("%w: AdaptEvery must be >= 1, got %d", ptcoperr.ErrInvalidLadder, c.AdaptEvery)
	}
	if c.TargetAcceptance <= 0 || c.TargetAcceptance >= 1 {
		return fmt.Errorf("%w: TargetAcceptance must be in (0,1), got %v",
			ptcoperr.ErrInvalidLadder, c.TargetAcceptance)
	}
	if c.StepMin <= 0 || c.StepMax <= c.StepMin {
		return fmt.Errorf("%w: step bounds must satisfy 0 < StepMin < StepMax, got [%v, %v]",
			ptcoperr.ErrInvalidLadder, c.StepMin, c.StepMax)
	}
	if c.InitialStep < c.StepMin || c.InitialStep > c.StepMax {
		return fmt.Errorf("%w: InitialStep must lie within [StepMin, StepMax], got %v",
			ptcoperr.ErrInvalidLadder, c.InitialStep)
	}
	if c.ACFLagCap < 1 {
		return fmt.Errorf("%w: ACFLagCap must be >= 1, got %d", ptcoperr.ErrInvalidLadder, c.ACFLagCap)
	}
	return nil
}
