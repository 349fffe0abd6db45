// Command gendata generates a synthetic titre/infected CSV from the
// four-parameter logistic dose-response model at a set of true parameters,
// for exercising the sampler's prior-recovery and deterministic-label
// properties without depending on an external dataset. Adapted from the
// teacher's own synthetic-data generator (cmd/gen), which seeded math/rand
// directly and streamed generated points to stdout.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"bitbucket.org/dtolpin/ptcop/model"
)

var (
	n       = 100
	seed    = int64(42)
	titreLo = -3.0
	titreHi = 3.0
	floor   = 0.05
	ceiling = 0.95
	ec50    = 0.0
	slope   = 1.0
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Generate synthetic titre/infected data. Invocation:
  %s [OPTIONS] > OUTPUT.csv
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.IntVar(&n, "n", n, "number of observations")
	flag.Int64Var(&seed, "seed", seed, "random seed")
	flag.Float64Var(&titreLo, "titre-lo", titreLo, "lowest titre in the evenly spaced grid")
	flag.Float64Var(&titreHi, "titre-hi", titreHi, "highest titre in the evenly spaced grid")
	flag.Float64Var(&floor, "floor", floor, "true floor parameter")
	flag.Float64Var(&ceiling, "ceiling", ceiling, "true ceiling parameter")
	flag.Float64Var(&ec50, "ec50", ec50, "true ec50 parameter")
	flag.Float64Var(&slope, "slope", slope, "true slope parameter")
}

func main() {
	flag.Parse()

	rnd := rand.New(rand.NewSource(seed))
	p := model.Params{Floor: floor, Ceiling: ceiling, EC50: ec50, Slope: slope}

	out := csv.NewWriter(os.Stdout)
	defer out.Flush()

	for i := 0; i < n; i++ {
		titre := titreLo
		if n > 1 {
			titre += (titreHi - titreLo) * float64(i) / float64(n-1)
		}
		prob := model.InfectionProbability(p, titre)
		infected := 0
		if rnd.Float64() < prob {
			infected = 1
		}
		out.Write([]string{
			strconv.FormatFloat(titre, 'f', 6, 64),
			strconv.Itoa(infected),
		})
	}
}
