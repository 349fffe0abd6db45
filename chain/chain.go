// Package chain implements a single Metropolis-Hastings chain running the
// tempered posterior at a fixed inverse-temperature weight. A chain owns
// its proposer, its current state and cached log-posterior, its acceptance
// counters, and its ordered sample trace.
package chain

import (
	"math"

	"bitbucket.org/dtolpin/ptcop/kernel"
	"bitbucket.org/dtolpin/ptcop/model"
	"bitbucket.org/dtolpin/ptcop/rng"
)

// wide initialization bounds, shared by every chain regardless of
// temperature (SPEC_FULL.md §4.3).
const (
	initFloorLo, initFloorHi     = 0.01, 0.5
	initCeilingLo, initCeilingHi = 0.1, 0.9
	initEC50Lo, initEC50Hi       = -2.0, 2.0
	initSlopeLo, initSlopeHi     = 0.1, 3.0
)

// Chain is one temperature rung of the ensemble.
type Chain struct {
	Temperature float64

	current    model.Params
	logPost    float64
	proposer   *kernel.Proposer
	accepted   int
	total      int
	adaptEvery int

	Trace []model.Params
}

// New constructs a chain at the given temperature, drawing its initial
// state from wide uniform bounds and caching its tempered log-posterior.
// expectedIterations sizes the trace's initial capacity; it is an estimate,
// not a limit.
func New(
	temperature float64,
	data model.Dataset,
	priors model.Priors,
	proposer *kernel.Proposer,
	adaptEvery int,
	expectedIterations int,
	src *rng.Source,
) *Chain {
	init := model.Params{
		Floor:   initFloorLo + src.Uniform()*(initFloorHi-initFloorLo),
		Ceiling: initCeilingLo + src.Uniform()*(initCeilingHi-initCeilingLo),
		EC50:    initEC50Lo + src.Uniform()*(initEC50Hi-initEC50Lo),
		Slope:   initSlopeLo + src.Uniform()*(initSlopeHi-initSlopeLo),
	}

	c := &Chain{
		Temperature: temperature,
		current:     init,
		proposer:    proposer,
		adaptEvery:  adaptEvery,
		Trace:       make([]model.Params, 0, expectedIterations),
	}
	c.logPost = model.LogPosteriorTempered(c.current, data, priors, c.Temperature)
	return c
}

// Step performs one Metropolis-Hastings update: propose, evaluate, accept
// or reject, append the (possibly unchanged) current state to the trace,
// and periodically adapt the proposer.
func (c *Chain) Step(data model.Dataset, priors model.Priors, src *rng.Source) {
	proposed := c.proposer.Propose(c.current, src)
	proposedLogPost := model.LogPosteriorTempered(proposed, data, priors, c.Temperature)

	logAlpha := proposedLogPost - c.logPost
	c.total++

	if math.Log(src.Uniform()) < logAlpha {
		c.current = proposed
		c.logPost = proposedLogPost
		c.accepted++
	}

	c.Trace = append(c.Trace, c.current)

	if c.total%c.adaptEvery == 0 {
		c.proposer.Adapt(c.AcceptanceRate())
	}
}

// GetCurrent returns the chain's current parameter vector.
func (c *Chain) GetCurrent() model.Params {
	return c.current
}

// GetLogPosterior returns the tempered log-posterior cached for the current
// state.
func (c *Chain) GetLogPosterior() float64 {
	return c.logPost
}

// SetCurrent replaces the chain's current state and recomputes its cached
// log-posterior, for use by the ensemble's replica swap.
func (c *Chain) SetCurrent(p model.Params, data model.Dataset, priors model.Priors) {
	c.current = p
	c.logPost = model.LogPosteriorTempered(c.current, data, priors, c.Temperature)
}

// AcceptanceRate returns accepted/total, or 0 if no steps have been taken.
func (c *Chain) AcceptanceRate() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.accepted) / float64(c.total)
}

// Accepted and Total expose the raw counters for invariant checks.
func (c *Chain) Accepted() int { return c.accepted }
func (c *Chain) Total() int    { return c.total }
