package orbdiff

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	maxNewtonIter = 200
	newtonTolX    = 1e-7
)

// NewtonRaphson solves model(t, x) = 0 for x, starting from the guess x0.
// The Jacobian of each step comes from Derivatives, so it is exact rather than
// finite differenced. Convergence is declared when the largest residual
// component drops below acc, or when the relative step size drops below 1e-7.
func NewtonRaphson(t float64, x0 []float64, model ForceModel, acc float64) ([]float64, error) {
	n := len(x0)
	fk := model.Eval(t, x0)
	if len(fk) != n {
		return nil, fmt.Errorf("model returned %d components for a %d element state", len(fk), n)
	}
	// The guess may already be a root.
	test := 0.0
	for idx := 0; idx < n; idx++ {
		if math.Abs(fk[idx]) > test {
			test = math.Abs(fk[idx])
		}
	}
	if test < 0.01*acc {
		return x0, nil
	}

	xLast := make([]float64, n)
	copy(xLast, x0)
	xNew := make([]float64, n)
	for iter := 0; iter < maxNewtonIter; iter++ {
		jac, err := Derivatives(t, xLast, model)
		if err != nil {
			return nil, err
		}
		// Solve J Δx = f for the full Newton step.
		Δx := mat64.NewVector(n, nil)
		if err := Δx.SolveVec(jac, mat64.NewVector(n, fk)); err != nil {
			return nil, fmt.Errorf("could not solve for the Newton step: %s", err)
		}
		testX := 0.0
		for idx := 0; idx < n; idx++ {
			xNew[idx] = xLast[idx] - Δx.At(idx, 0)
			temp := math.Abs(Δx.At(idx, 0)) / math.Max(math.Abs(xNew[idx]), 1)
			if temp > testX {
				testX = temp
			}
		}
		if testX < newtonTolX {
			return xNew, nil
		}
		copy(xLast, xNew)

		fk = model.Eval(t, xNew)
		testF := 0.0
		for idx := 0; idx < n; idx++ {
			if math.Abs(fk[idx]) > testF {
				testF = math.Abs(fk[idx])
			}
		}
		if testF < acc {
			return xNew, nil
		}
	}
	return nil, fmt.Errorf("no convergence after %d iterations", maxNewtonIter)
}
