package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	lambert "github.com/Caua-ferraz/Lamberts-solver"
	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

// This code effectively only reads a transfer scenario, solves the Lambert
// problem and cross-checks the solution by propagating the departure state.

var (
	scenario string
	canned   string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", "", "transfer scenario TOML file")
	flag.StringVar(&canned, "canned", "", "canned scenario (surface2leo, leo2geo or earth2moon)")
	flag.BoolVar(&verbose, "verbose", false, "also log solver convergence information")
}

// cannedScenario returns one of the built-in transfer scenarios. The target
// is offset by ten degrees from the departure axis so the transfer plane is
// well defined.
func cannedScenario(name string) (lambert.Scenario, error) {
	const earthSurface = 6371.0 // km, mean radius for surface departure scenarios
	sinθ, cosθ := math.Sincos(10 * math.Pi / 180)
	mk := func(r1, r2 float64, Δt time.Duration) lambert.Scenario {
		return lambert.Scenario{
			Name: name, Body: lambert.Earth,
			R1:        mat64.NewVector(3, []float64{r1, 0, 0}),
			R2:        mat64.NewVector(3, []float64{r2 * cosθ, r2 * sinθ, 0}),
			Δt:        Δt,
			Direction: lambert.Prograde,
			Steps:     lambert.DefaultSteps,
		}
	}
	switch name {
	case "surface2leo":
		return mk(earthSurface, earthSurface+400, 1000*time.Second), nil
	case "leo2geo":
		return mk(earthSurface+400, earthSurface+35786, 5*time.Hour), nil
	case "earth2moon":
		return mk(earthSurface, 384400, 300000*time.Second), nil
	default:
		return lambert.Scenario{}, fmt.Errorf("unknown canned scenario '%s'", name)
	}
}

func main() {
	flag.Parse()
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "cmd", "lambert")

	var sc lambert.Scenario
	var err error
	switch {
	case scenario != "":
		sc, err = lambert.LoadScenario(scenario)
	case canned != "":
		sc, err = cannedScenario(canned)
	default:
		log.Fatal("no scenario provided: use -scenario or -canned")
	}
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}

	solver := lambert.NewLambertSolverForBody(sc.Body)
	if verbose {
		solver.SetLogger(logger)
	}
	V1, V2, err := solver.Solve(sc.R1, sc.R2, sc.Δt, sc.Direction)
	if err != nil {
		// All solver errors are terminal: there is no partial result to show.
		if lambert.IsTerminal(err) {
			log.Fatalf("%s: no solution: %s", sc.Name, err)
		}
		log.Fatalf("%s: %s", sc.Name, err)
	}
	logger.Log("scenario", sc.Name, "body", sc.Body.Name, "tof", sc.Δt, "dir", sc.Direction)
	logger.Log("v1(km/s)", fmt.Sprintf("%v", mat64.Formatted(V1.T())), "v2(km/s)", fmt.Sprintf("%v", mat64.Formatted(V2.T())))

	ξ1 := lambert.OrbitalEnergy(sc.R1, V1, sc.Body.GM())
	ξ2 := lambert.OrbitalEnergy(sc.R2, V2, sc.Body.GM())
	logger.Log("ξ1(km^2/s^2)", ξ1, "ξ2(km^2/s^2)", ξ2, "Δξ", math.Abs(ξ1-ξ2))

	// The built-in self-consistency check: propagate the departure state
	// forward and compare against the supplied arrival position.
	Rf, Vf, err := lambert.PropagateOrbit(sc.R1, V1, sc.Δt, sc.Body.GM(), sc.Steps)
	if err != nil {
		log.Fatalf("%s: propagation check: %s", sc.Name, err)
	}
	ΔR := mat64.NewVector(3, nil)
	ΔV := mat64.NewVector(3, nil)
	ΔR.SubVec(Rf, sc.R2)
	ΔV.SubVec(Vf, V2)
	logger.Log("check", "propagation", "steps", sc.Steps,
		"ΔR(km)", mat64.Norm(ΔR, 2), "ΔV(km/s)", mat64.Norm(ΔV, 2),
		"relΔR", mat64.Norm(ΔR, 2)/mat64.Norm(sc.R2, 2))

	hohmannTof := lambert.HohmannTransferTime(mat64.Norm(sc.R1, 2), mat64.Norm(sc.R2, 2), sc.Body.GM())
	logger.Log("reference", "hohmann", "tof", hohmannTof)
}
