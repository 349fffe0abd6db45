// Package ensemble drives the parallel-tempering ensemble: it constructs the
// geometric temperature ladder, initializes every chain, advances them in
// ladder order each iteration, and performs adjacent-pair replica swaps on a
// fixed cadence.
package ensemble

import (
	"fmt"
	"math"

	"bitbucket.org/dtolpin/ptcop/chain"
	"bitbucket.org/dtolpin/ptcop/config"
	"bitbucket.org/dtolpin/ptcop/kernel"
	"bitbucket.org/dtolpin/ptcop/model"
	"bitbucket.org/dtolpin/ptcop/priors"
	"bitbucket.org/dtolpin/ptcop/ptcoperr"
	"bitbucket.org/dtolpin/ptcop/rng"
)

// Ensemble is the ordered sequence of chains plus the shared random source
// and swap bookkeeping. Chains never reference the Ensemble or each other;
// the swap operation is the only thing that reaches across chain
// boundaries, and it runs strictly between iterations.
type Ensemble struct {
	cfg  config.Config
	data model.Dataset

	chains       []*chain.Chain
	temperatures []float64

	src *rng.Source

	swapAccepted int
	swapTotal    int

	iteration int
}

// Construct builds the ensemble: the geometric temperature ladder, one
// chain per rung with a wide random start, and the shared random source
// seeded with seed. It fails with a ptcoperr sentinel if cfg, data, or
// priors are malformed.
func Construct(cfg config.Config, data model.Dataset, p model.Priors, seed uint32) (*Ensemble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data.N() < 1 {
		return nil, fmt.Errorf("%w: dataset has N=%d observations", ptcoperr.ErrEmptyDataset, data.N())
	}
	if len(data.Titre) != len(data.Infected) {
		return nil, fmt.Errorf("%w: titre has %d entries, infected has %d",
			ptcoperr.ErrEmptyDataset, len(data.Titre), len(data.Infected))
	}
	if err := priors.Validate(p); err != nil {
		return nil, err
	}

	temperatures := ladder(cfg.Chains, cfg.MaxTemperature)

	src := rng.New(seed)
	chains := make([]*chain.Chain, cfg.Chains)
	for k, T := range temperatures {
		proposer := kernel.NewProposer(cfg.InitialStep, cfg.StepMin, cfg.StepMax, cfg.TargetAcceptance)
		chains[k] = chain.New(T, data, p, proposer, cfg.AdaptEvery, 10000, src)
	}

	return &Ensemble{
		cfg:          cfg,
		data:         data,
		chains:       chains,
		temperatures: temperatures,
		src:          src,
	}, nil
}

// ladder returns the geometric temperature ladder T_k = T_max^(k/(K-1)),
// with T_0 = 1 always; when K == 1 the ladder is the single rung [1].
func ladder(k int, maxTemperature float64) []float64 {
	temps := make([]float64, k)
	if k == 1 {
		temps[0] = 1
		return temps
	}
	for i := 0; i < k; i++ {
		temps[i] = math.Pow(maxTemperature, float64(i)/float64(k-1))
	}
	return temps
}

// Reseed replaces the ensemble's shared random stream.
func (e *Ensemble) Reseed(seed uint32) {
	e.src.Reseed(seed)
}

// Run advances every chain by nIterations steps, attempting a replica swap
// every cfg.SwapEvery iterations. The swap cadence is checked against the
// iteration index local to this Run call (0, 1, 2, ...), matching the
// reference implementation, so the first iteration of every Run call is
// always a swap attempt.
func (e *Ensemble) Run(nIterations int, p model.Priors) {
	for iter := 0; iter < nIterations; iter++ {
		for _, c := range e.chains {
			c.Step(e.data, p, e.src)
		}

		if iter%e.cfg.SwapEvery == 0 && len(e.chains) > 1 {
			e.attemptSwap(p)
		}

		e.iteration++
	}
}

// attemptSwap picks a uniformly random adjacent chain pair and exchanges
// their parameter states with Metropolis probability
// exp((logpi - logpj) * (1/Tj - 1/Ti)).
func (e *Ensemble) attemptSwap(p model.Priors) {
	i := e.src.IntN(len(e.chains) - 1)
	j := i + 1

	ci, cj := e.chains[i], e.chains[j]
	logAlpha := (ci.GetLogPosterior() - cj.GetLogPosterior()) *
		(1/e.temperatures[j] - 1/e.temperatures[i])

	e.swapTotal++
	if math.Log(e.src.Uniform()) < logAlpha {
		pi, pj := ci.GetCurrent(), cj.GetCurrent()
		ci.SetCurrent(pj, e.data, p)
		cj.SetCurrent(pi, e.data, p)
		e.swapAccepted++
	}
}

// GetSamples returns the cold chain's ordered trace.
func (e *Ensemble) GetSamples() []model.Params {
	return e.chains[0].Trace
}

// GetSwapRate returns swap_accepted/swap_total, or 0 if no swaps were
// attempted.
func (e *Ensemble) GetSwapRate() float64 {
	if e.swapTotal == 0 {
		return 0
	}
	return float64(e.swapAccepted) / float64(e.swapTotal)
}

// GetAcceptanceRates returns each chain's acceptance rate, in ladder order.
func (e *Ensemble) GetAcceptanceRates() []float64 {
	rates := make([]float64, len(e.chains))
	for k, c := range e.chains {
		rates[k] = c.AcceptanceRate()
	}
	return rates
}

// TotalIterations returns the cumulative number of iterations run across
// every Run call so far.
func (e *Ensemble) TotalIterations() int {
	return e.iteration
}

// Temperatures returns the fixed temperature ladder.
func (e *Ensemble) Temperatures() []float64 {
	temps := make([]float64, len(e.temperatures))
	copy(temps, e.temperatures)
	return temps
}
