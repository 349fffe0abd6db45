// Package diagnostics computes convergence diagnostics — split-R̂ and
// autocorrelation-based effective sample size — from a chain's post-warmup
// trace, plus the posterior mean/sd every caller ends up wanting alongside
// them. Diagnostics are read-only with respect to the sampler.
package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"bitbucket.org/dtolpin/ptcop/model"
)

// NParams is the fixed number of sampled parameters, in the order
// (floor, ceiling, ec50, slope).
const NParams = 4

// minSamples is the post-warmup sample count below which both diagnostics
// return sentinel values rather than attempting an estimate on too little
// data.
const minSamples = 100

// Summary holds, per parameter, the split-R̂, the effective sample size,
// and the posterior mean/sd — all computed over the same post-warmup trace.
type Summary struct {
	RHat [NParams]float64
	ESS  [NParams]float64
	Mean [NParams]float64
	SD   [NParams]float64
}

// Compute builds a Summary from trace, discarding the first warmup entries.
func Compute(trace []model.Params, warmup int, acfLagCap int) Summary {
	var s Summary

	n := len(trace) - warmup
	if n < minSamples {
		for k := 0; k < NParams; k++ {
			s.RHat[k] = 1
			s.ESS[k] = 0
		}
		return s
	}

	for k := 0; k < NParams; k++ {
		x := column(trace[warmup:], k)
		s.RHat[k] = splitRHat(x)
		s.ESS[k] = effectiveSampleSize(x, acfLagCap)
		s.Mean[k] = stat.Mean(x, nil)
		s.SD[k] = math.Sqrt(stat.Variance(x, nil))
	}
	return s
}

// column extracts the k-th parameter (floor=0, ceiling=1, ec50=2, slope=3)
// from a trace slice.
func column(trace []model.Params, k int) []float64 {
	x := make([]float64, len(trace))
	for i, p := range trace {
		switch k {
		case 0:
			x[i] = p.Floor
		case 1:
			x[i] = p.Ceiling
		case 2:
			x[i] = p.EC50
		case 3:
			x[i] = p.Slope
		}
	}
	return x
}

// splitRHat computes the split Gelman-Rubin statistic on x: split into two
// contiguous halves, compare within-half variance to the pooled marginal
// variance estimator.
func splitRHat(x []float64) float64 {
	n := len(x)
	h := n / 2
	first := x[:h]
	second := x[h:]

	mean1 := stat.Mean(first, nil)
	mean2 := stat.Mean(second, nil)
	v1 := stat.Variance(first, nil)
	v2 := stat.Variance(second, nil)

	w := (v1 + v2) / 2
	mean := (mean1 + mean2) / 2
	b := float64(h) * ((mean1-mean)*(mean1-mean) + (mean2-mean)*(mean2-mean))

	vHat := (float64(h-1)/float64(h))*w + (1/float64(h))*b
	return math.Sqrt(vHat / w)
}

// effectiveSampleSize computes the autocorrelation-based ESS of x, summing
// lag-by-lag autocorrelations up to lagCap (and up to n/2), stopping at the
// first negative lag (that lag is included in the sum).
func effectiveSampleSize(x []float64, lagCap int) float64 {
	n := len(x)
	mean := stat.Mean(x, nil)
	variance := stat.Variance(x, nil)

	maxLag := lagCap
	if n/2 < maxLag {
		maxLag = n / 2
	}

	sumACF := 0.0
	for lag := 1; lag < maxLag; lag++ {
		num := 0.0
		for i := lag; i < n; i++ {
			num += (x[i] - mean) * (x[i-lag] - mean)
		}
		rho := num / (float64(n-lag) * variance)
		sumACF += rho
		if rho < 0 {
			break
		}
	}

	return float64(n) / (1 + 2*sumACF)
}
