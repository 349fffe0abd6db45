// Package ptcop is the host-facing façade: a small in-process surface that
// accepts a dataset and priors, runs the parallel-tempering sampler for a
// requested iteration count, and returns samples, acceptance statistics,
// and convergence diagnostics. It owns no wire protocol — callers link
// against it directly, the way the host bridge described in SPEC_FULL.md
// §1 is expected to.
package ptcop

import (
	"bitbucket.org/dtolpin/ptcop/config"
	"bitbucket.org/dtolpin/ptcop/diagnostics"
	"bitbucket.org/dtolpin/ptcop/ensemble"
	"bitbucket.org/dtolpin/ptcop/model"
)

// Sampler is the host-facing handle onto one parallel-tempering run.
type Sampler struct {
	ensemble *ensemble.Ensemble
	priors   model.Priors
	cfg      config.Config
}

// Construct builds a Sampler. It fails with a ptcoperr sentinel error if cfg
// describes an invalid ladder, data is empty or malformed, or priors has a
// non-positive Beta shape parameter or standard deviation. seed initializes
// the shared random stream; call SetRandomSeed afterwards to reseed.
func Construct(cfg config.Config, data model.Dataset, priors model.Priors, seed uint32) (*Sampler, error) {
	e, err := ensemble.Construct(cfg, data, priors, seed)
	if err != nil {
		return nil, err
	}
	return &Sampler{ensemble: e, priors: priors, cfg: cfg}, nil
}

// ConstructDefault builds a Sampler using the reference configuration
// (config.Default()).
func ConstructDefault(data model.Dataset, priors model.Priors, seed uint32) (*Sampler, error) {
	return Construct(config.Default(), data, priors, seed)
}

// SetRandomSeed reseeds the shared generator.
func (s *Sampler) SetRandomSeed(seed uint32) {
	s.ensemble.Reseed(seed)
}

// Run advances the ensemble by nIterations steps.
func (s *Sampler) Run(nIterations int) {
	s.ensemble.Run(nIterations, s.priors)
}

// GetSamples returns the cold chain's ordered trace of parameter vectors,
// one per step across every Run call so far.
func (s *Sampler) GetSamples() []model.Params {
	return s.ensemble.GetSamples()
}

// ComputeRHat returns the split-R̂ diagnostic per parameter, in the fixed
// order (floor, ceiling, ec50, slope).
func (s *Sampler) ComputeRHat(warmup int) [4]float64 {
	return diagnostics.Compute(s.GetSamples(), warmup, s.cfg.ACFLagCap).RHat
}

// ComputeESS returns the autocorrelation-based effective sample size per
// parameter, in the fixed order (floor, ceiling, ec50, slope).
func (s *Sampler) ComputeESS(warmup int) [4]float64 {
	return diagnostics.Compute(s.GetSamples(), warmup, s.cfg.ACFLagCap).ESS
}

// Diagnostics returns the full diagnostic summary (R̂, ESS, posterior
// mean/sd) computed over the post-warmup trace.
func (s *Sampler) Diagnostics(warmup int) diagnostics.Summary {
	return diagnostics.Compute(s.GetSamples(), warmup, s.cfg.ACFLagCap)
}

// GetSwapRate returns swap_accepted/swap_total across the run so far, or 0
// if no swaps have been attempted.
func (s *Sampler) GetSwapRate() float64 {
	return s.ensemble.GetSwapRate()
}

// GetAcceptanceRates returns each chain's acceptance rate, in ladder order.
func (s *Sampler) GetAcceptanceRates() []float64 {
	return s.ensemble.GetAcceptanceRates()
}

// Temperatures returns the fixed temperature ladder the sampler was
// constructed with.
func (s *Sampler) Temperatures() []float64 {
	return s.ensemble.Temperatures()
}
