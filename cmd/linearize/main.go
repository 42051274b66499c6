package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/gonum/matrix/mat64"
	"github.com/mellemahp/orbdiff"
	"github.com/spf13/viper"
)

const (
	defaultScenario = "~~unset~~"
)

var scenario string

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "linearization scenario TOML file")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}

	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	// Read reference state
	centerName := viper.GetString("state.body")
	if centerName == "" {
		centerName = "Earth"
	}
	center, err := orbdiff.CelestialObjectFromString(centerName)
	if err != nil {
		log.Fatalf("state.body: %s", err)
	}
	epoch := viper.GetFloat64("state.epoch")
	state := make([]float64, 6)
	for i := 0; i < 3; i++ {
		state[i] = viper.GetFloat64(fmt.Sprintf("state.R%d", i+1))
		state[i+3] = viper.GetFloat64(fmt.Sprintf("state.V%d", i+1))
	}
	R := state[:3]
	rNorm := orbdiff.Norm(R)
	if rNorm == 0 {
		log.Fatalf("state.R is the origin of %s", center)
	}

	lin := orbdiff.NewLinearization(scenario, orbdiff.NewPointMassGravity(center))
	fDot := lin.Derivative(epoch, state)
	jac, err := lin.Jacobian(epoch, state)
	if err != nil {
		log.Fatalf("jacobian: %s", err)
	}

	// Cross check against the closed form gradient.
	var diff mat64.Dense
	diff.Sub(jac, orbdiff.GravityGradient(center, R))
	maxDiff := 0.0
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if d := diff.At(i, j); d > maxDiff {
				maxDiff = d
			} else if -d > maxDiff {
				maxDiff = -d
			}
		}
	}

	hNorm := orbdiff.Norm(orbdiff.Cross(R, state[3:]))
	fmt.Printf("%s\naltitude: %.3f km\nangular momentum: %.3f km²/s\nfDot: %+v\n", center, rNorm-center.Radius, hNorm, fDot)
	fmt.Printf("Jacobian:\n%v\n", mat64.Formatted(jac, mat64.Prefix("")))
	fmt.Printf("max deviation from closed form: %.3e\n", maxDiff)
}
