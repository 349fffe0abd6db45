package diagnostics

import (
	"math"
	"math/rand"
	"testing"

	"bitbucket.org/dtolpin/ptcop/model"
)

func TestComputeSentinelBelowMinSamples(t *testing.T) {
	trace := make([]model.Params, 50)
	s := Compute(trace, 0, 100)
	for k := 0; k < NParams; k++ {
		if s.RHat[k] != 1 {
			t.Fatalf("RHat[%d] = %v, want 1 for n < 100", k, s.RHat[k])
		}
		if s.ESS[k] != 0 {
			t.Fatalf("ESS[%d] = %v, want 0 for n < 100", k, s.ESS[k])
		}
	}
}

func TestComputeSentinelWithFiftyPostWarmupSamples(t *testing.T) {
	// 10000 total, warmup 9950 leaves exactly 50 post-warmup samples: below
	// the n<100 threshold, so sentinel values are still expected.
	trace := make([]model.Params, 10000)
	s := Compute(trace, 9950, 100)
	for k := 0; k < NParams; k++ {
		if s.RHat[k] != 1 || s.ESS[k] != 0 {
			t.Fatalf("param %d: RHat=%v ESS=%v, want sentinel (1, 0)", k, s.RHat[k], s.ESS[k])
		}
	}
}

func TestRHatNearOneOnStationaryTrace(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	n := 20000
	trace := make([]model.Params, n)
	for i := range trace {
		trace[i] = model.Params{
			Floor:   0.3 + 0.01*rnd.NormFloat64(),
			Ceiling: 0.7 + 0.01*rnd.NormFloat64(),
			EC50:    0 + 0.1*rnd.NormFloat64(),
			Slope:   1 + 0.05*rnd.NormFloat64(),
		}
	}
	s := Compute(trace, 0, 100)
	for k := 0; k < NParams; k++ {
		if math.Abs(s.RHat[k]-1) > 0.05 {
			t.Fatalf("RHat[%d] = %v, want close to 1 on a stationary iid trace", k, s.RHat[k])
		}
	}
}

func TestESSNearNForIIDTrace(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	n := 5000
	trace := make([]model.Params, n)
	for i := range trace {
		trace[i] = model.Params{
			Floor:   0.3 + 0.05*rnd.NormFloat64(),
			Ceiling: 0.7 + 0.05*rnd.NormFloat64(),
			EC50:    0.05 * rnd.NormFloat64(),
			Slope:   1 + 0.05*rnd.NormFloat64(),
		}
	}
	s := Compute(trace, 0, 100)
	for k := 0; k < NParams; k++ {
		// For an i.i.d. trace ESS should be a large fraction of n; autocorrelation
		// noise can push it above or below n, but not by an order of magnitude.
		if s.ESS[k] < float64(n)*0.3 || s.ESS[k] > float64(n)*3 {
			t.Fatalf("ESS[%d] = %v, implausible for an i.i.d. trace of size %d", k, s.ESS[k], n)
		}
	}
}

func TestESSLowForStronglyAutocorrelatedTrace(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	n := 5000
	trace := make([]model.Params, n)
	var floor float64 = 0.3
	for i := range trace {
		// A random walk is strongly autocorrelated: ESS should end up far
		// below n.
		floor += 0.001 * rnd.NormFloat64()
		trace[i] = model.Params{
			Floor:   floor,
			Ceiling: 0.5 + 0.01*rnd.NormFloat64(),
			EC50:    0.01 * rnd.NormFloat64(),
			Slope:   1 + 0.01*rnd.NormFloat64(),
		}
	}
	s := Compute(trace, 0, 100)
	if s.ESS[0] > float64(n)*0.5 {
		t.Fatalf("ESS[floor] = %v, want much less than n=%d for a random-walk trace", s.ESS[0], n)
	}
}
