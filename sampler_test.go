package ptcop

import (
	"math"
	"testing"

	"bitbucket.org/dtolpin/ptcop/config"
	"bitbucket.org/dtolpin/ptcop/model"
	"bitbucket.org/dtolpin/ptcop/priors"
)

func TestTwoPointSyntheticScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running scenario in -short mode")
	}

	data := model.Dataset{Titre: []float64{-5, 5}, Infected: []int{1, 0}}
	s, err := ConstructDefault(data, priors.Default(), 42)
	if err != nil {
		t.Fatalf("Construct() error: %v", err)
	}

	s.Run(20000)

	rhat := s.ComputeRHat(5000)
	for k, r := range rhat {
		if r >= 1.1 {
			t.Errorf("RHat[%d] = %v, want < 1.1", k, r)
		}
	}

	if rate := s.GetSwapRate(); rate <= 0.1 {
		t.Errorf("GetSwapRate() = %v, want > 0.1", rate)
	}

	diag := s.Diagnostics(5000)
	if ec50 := diag.Mean[2]; ec50 <= -2 || ec50 >= 2 {
		t.Errorf("posterior mean ec50 = %v, want in (-2, 2)", ec50)
	}
}

func TestDegenerateSlopePriorDominates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running scenario in -short mode")
	}

	data := model.Dataset{Titre: []float64{-5, 5}, Infected: []int{1, 0}}
	p := priors.Default()
	p.SlopeMean = 2.0
	p.SlopeSD = 0.01

	s, err := ConstructDefault(data, p, 42)
	if err != nil {
		t.Fatalf("Construct() error: %v", err)
	}
	s.Run(20000)

	diag := s.Diagnostics(5000)
	if got := diag.Mean[3]; math.Abs(got-2.0) > 0.1 {
		t.Errorf("posterior mean slope = %v, want within 0.1 of 2.0", got)
	}
}

func TestDeterministicLabelsRecoverEC50(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running scenario in -short mode")
	}

	n := 100
	titre := make([]float64, n)
	infected := make([]int, n)
	for i := 0; i < n; i++ {
		t := -3 + 6*float64(i)/float64(n-1)
		titre[i] = t
		if t < 0 {
			infected[i] = 1
		}
	}
	data := model.Dataset{Titre: titre, Infected: infected}

	s, err := ConstructDefault(data, priors.Default(), 42)
	if err != nil {
		t.Fatalf("Construct() error: %v", err)
	}
	s.Run(20000)

	diag := s.Diagnostics(5000)
	if got := diag.Mean[2]; math.Abs(got) > 0.5 {
		t.Errorf("posterior mean ec50 = %v, want within 0.5 of 0", got)
	}
	if got := diag.Mean[3]; got <= 0 {
		t.Errorf("posterior mean slope = %v, want positive", got)
	}
}

func TestReproducibilityAcrossRuns(t *testing.T) {
	data := model.Dataset{Titre: []float64{-5, 5}, Infected: []int{1, 0}}

	s1, _ := ConstructDefault(data, priors.Default(), 42)
	s2, _ := ConstructDefault(data, priors.Default(), 42)

	s1.Run(2000)
	s2.Run(2000)

	t1, t2 := s1.GetSamples(), s2.GetSamples()
	if len(t1) != len(t2) {
		t.Fatalf("trace lengths differ: %d vs %d", len(t1), len(t2))
	}
	for i := range t1 {
		if t1[i] != t2[i] {
			t.Fatalf("traces diverged at sample %d", i)
		}
	}
}

func TestReseedEffectPrefixMatchesSuffixDiverges(t *testing.T) {
	data := model.Dataset{Titre: []float64{-5, 5}, Infected: []int{1, 0}}

	base, _ := ConstructDefault(data, priors.Default(), 42)
	base.Run(2000)
	basePrefix := append([]model.Params(nil), base.GetSamples()...)

	reseeded, _ := ConstructDefault(data, priors.Default(), 42)
	reseeded.Run(2000)

	prefix := reseeded.GetSamples()
	for i := range basePrefix {
		if basePrefix[i] != prefix[i] {
			t.Fatalf("prefix before reseed diverged at %d", i)
		}
	}

	reseeded.SetRandomSeed(99)
	reseeded.Run(2000)
	base.Run(2000)

	suffixA, suffixB := base.GetSamples(), reseeded.GetSamples()
	diverged := false
	for i := len(basePrefix); i < len(suffixA); i++ {
		if suffixA[i] != suffixB[i] {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatalf("expected the post-reseed suffix to diverge from the un-reseeded run")
	}
}

func TestDiagnosticSentinelAfterShortWarmupMargin(t *testing.T) {
	data := model.Dataset{Titre: []float64{-5, 5}, Infected: []int{1, 0}}
	s, err := ConstructDefault(data, priors.Default(), 42)
	if err != nil {
		t.Fatalf("Construct() error: %v", err)
	}
	s.Run(10000)

	rhat := s.ComputeRHat(9950)
	for k, r := range rhat {
		if r != 1 {
			t.Errorf("RHat[%d] = %v, want sentinel 1 with only 50 post-warmup samples", k, r)
		}
	}
	ess := s.ComputeESS(9950)
	for k, v := range ess {
		if v != 0 {
			t.Errorf("ESS[%d] = %v, want sentinel 0 with only 50 post-warmup samples", k, v)
		}
	}
}

func TestConstructRejectsInvalidConfig(t *testing.T) {
	data := model.Dataset{Titre: []float64{1}, Infected: []int{0}}
	cfg := config.Default()
	cfg.Chains = 0
	if _, err := Construct(cfg, data, priors.Default(), 1); err == nil {
		t.Fatalf("Construct() with Chains=0 should fail")
	}
}
