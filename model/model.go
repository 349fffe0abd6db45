// Package model holds the data types and math kernel shared by every other
// package of the sampler: the observation dataset, the prior
// hyperparameters, the four-parameter vector, and the log-density functions
// that turn them into a tempered log-posterior.
package model

import "math"

// Dataset is an immutable collection of paired titre/infection observations.
type Dataset struct {
	Titre    []float64
	Infected []int
}

// N reports the number of observations.
func (d Dataset) N() int {
	return len(d.Titre)
}

// Priors holds the eight hyperparameters of the four independent priors.
type Priors struct {
	FloorAlpha, FloorBeta     float64
	CeilingAlpha, CeilingBeta float64
	EC50Mean, EC50SD          float64
	SlopeMean, SlopeSD        float64
}

// Params is the four-parameter dose-response vector sampled by the chains.
type Params struct {
	Floor   float64
	Ceiling float64
	EC50    float64
	Slope   float64
}

// Sigmoid is the standard logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// LogBetaPDF is the unnormalized Beta(alpha, beta) log-density. The
// normalizing log-Beta-function term is omitted deliberately: it cancels in
// every within-chain Metropolis-Hastings ratio, and carrying it would change
// the replica-swap ratio computed in the ensemble package away from the
// reference implementation (see DESIGN.md).
func LogBetaPDF(x, alpha, beta float64) float64 {
	if x <= 0 || x >= 1 {
		return math.Inf(-1)
	}
	return (alpha-1)*math.Log(x) + (beta-1)*math.Log(1-x)
}

// LogNormalPDF is the full Normal(mean, sd) log-density.
func LogNormalPDF(x, mean, sd float64) float64 {
	z := (x - mean) / sd
	return -0.5*z*z - math.Log(sd) - 0.5*math.Log(2*math.Pi)
}

// LogTruncatedNormalPDF is the Normal(mean, sd) log-density truncated to
// (0, +Inf). The normalizing truncation mass is P(X>0) = Phi(mean/sd),
// computed as 0.5*erfc(-mean/(sd*sqrt(2))) directly rather than as
// 1-0.5*erfc(mean/(sd*sqrt(2))): for a mean many standard deviations below
// 0, the subtracted term rounds to 1.0 and the 1-x form cancels to a log(0)
// of -Inf, while the direct form keeps the tiny mass representable much
// further into the tail.
func LogTruncatedNormalPDF(x, mean, sd float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	z := (x - mean) / sd
	logTruncationMass := math.Log(0.5 * math.Erfc(-mean/(sd*math.Sqrt2)))
	return -0.5*z*z - math.Log(sd) - 0.5*math.Log(2*math.Pi) - logTruncationMass
}

// LogBernoulliPMF is the Bernoulli(p) log-pmf for outcome y in {0, 1}.
func LogBernoulliPMF(y int, p float64) float64 {
	if p <= 0 || p >= 1 {
		return math.Inf(-1)
	}
	if y == 1 {
		return math.Log(p)
	}
	return math.Log(1 - p)
}

// InfectionProbability is the model's per-observation probability of
// infection at a given titre.
func InfectionProbability(p Params, titre float64) float64 {
	return p.Ceiling * (Sigmoid(-p.Slope*(titre-p.EC50))*(1-p.Floor) + p.Floor)
}

// LogPrior sums the four independent prior log-densities.
func LogPrior(p Params, priors Priors) float64 {
	lp := LogBetaPDF(p.Floor, priors.FloorAlpha, priors.FloorBeta)
	lp += LogBetaPDF(p.Ceiling, priors.CeilingAlpha, priors.CeilingBeta)
	lp += LogNormalPDF(p.EC50, priors.EC50Mean, priors.EC50SD)
	lp += LogTruncatedNormalPDF(p.Slope, priors.SlopeMean, priors.SlopeSD)
	return lp
}

// LogLikelihood sums the Bernoulli log-pmf over every observation, short-
// circuiting to -Inf as soon as a term is non-finite (+Inf included, not
// just -Inf/NaN: a non-finite log-likelihood of either sign can never be a
// valid log-probability).
func LogLikelihood(p Params, data Dataset) float64 {
	ll := 0.0
	for i, titre := range data.Titre {
		prob := InfectionProbability(p, titre)
		ll += LogBernoulliPMF(data.Infected[i], prob)
		if math.IsInf(ll, 0) || math.IsNaN(ll) {
			return math.Inf(-1)
		}
	}
	return ll
}

// LogPosteriorTempered computes log_prior(theta) + log_likelihood(theta)/T,
// returning -Inf if either addend is non-finite in either direction.
func LogPosteriorTempered(p Params, data Dataset, priors Priors, temperature float64) float64 {
	lp := LogPrior(p, priors)
	if math.IsInf(lp, 0) || math.IsNaN(lp) {
		return math.Inf(-1)
	}
	ll := LogLikelihood(p, data)
	if math.IsInf(ll, 0) || math.IsNaN(ll) {
		return math.Inf(-1)
	}
	return lp + ll/temperature
}
