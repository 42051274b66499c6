package orbdiff

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
	"gonum.org/v1/gonum/num/dual"
)

// Derivatives returns the Jacobian of the force model's derivative with respect
// to the state, evaluated at (t, state): entry (i,j) is ∂fDot[i]/∂state[j].
// Each state component is lifted into a dual number and seeded in turn, so the
// partials are exact to floating point precision, not finite differences.
// A state which drives the model out of its domain (e.g. a zero position norm
// for point mass gravity) returns an error rather than a matrix of Inf/NaN.
func Derivatives(t float64, state []float64, model ForceModel) (*mat64.Dense, error) {
	n := len(state)
	lifted := make([]dual.Number, n)
	for i, v := range state {
		lifted[i] = dual.Number{Real: v}
	}
	jac := mat64.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		lifted[j].Emag = 1
		fDot := model.EvalDual(t, lifted)
		if len(fDot) != n {
			return nil, fmt.Errorf("force model returned %d components for a %d element state", len(fDot), n)
		}
		for i, f := range fDot {
			jac.Set(i, j, f.Emag)
		}
		lifted[j].Emag = 0
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := jac.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("non finite Jacobian entry (%d,%d), state violates the model's domain", i, j)
			}
		}
	}
	return jac, nil
}

// Linearization evaluates a force model and its state Jacobian about reference states.
type Linearization struct {
	Model  ForceModel    // model to differentiate
	logger kitlog.Logger // logger
}

// Derivative returns the time derivative of the state at t.
func (l *Linearization) Derivative(t float64, state []float64) []float64 {
	return l.Model.Eval(t, state)
}

// Jacobian returns the state Jacobian at (t, state), logging domain failures.
func (l *Linearization) Jacobian(t float64, state []float64) (*mat64.Dense, error) {
	jac, err := Derivatives(t, state, l.Model)
	if err != nil {
		l.logger.Log("level", "critical", "subsys", "linearize", "err", err)
		return nil, err
	}
	return jac, nil
}

// NewLinearization returns a ready to use linearization of the given model.
func NewLinearization(n string, model ForceModel) *Linearization {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "linearize", n)
	return &Linearization{model, klog}
}

// GravityGradient returns the closed form 6x6 gradient of point mass gravity at
// position R, i.e. the A matrix of the two-body problem. It is the analytic
// counterpart of Derivatives on a PointMassGravity model.
func GravityGradient(center CelestialObject, R []float64) *mat64.Dense {
	A := mat64.NewDense(6, 6, nil)
	// Top right is Identity 3x3
	A.Set(0, 3, 1)
	A.Set(1, 4, 1)
	A.Set(2, 5, 1)
	x := R[0]
	y := R[1]
	z := R[2]
	x2 := math.Pow(R[0], 2)
	y2 := math.Pow(R[1], 2)
	z2 := math.Pow(R[2], 2)
	r2 := x2 + y2 + z2
	r232 := math.Pow(r2, 3/2.)
	r252 := math.Pow(r2, 5/2.)

	dAxDx := 3*center.μ*x2/r252 - center.μ/r232
	dAxDy := 3 * center.μ * x * y / r252
	dAxDz := 3 * center.μ * x * z / r252
	dAyDx := 3 * center.μ * x * y / r252
	dAyDy := 3*center.μ*y2/r252 - center.μ/r232
	dAyDz := 3 * center.μ * y * z / r252
	dAzDx := 3 * center.μ * x * z / r252
	dAzDy := 3 * center.μ * y * z / r252
	dAzDz := 3*center.μ*z2/r252 - center.μ/r232

	A.Set(3, 0, dAxDx)
	A.Set(4, 0, dAyDx)
	A.Set(5, 0, dAzDx)
	A.Set(3, 1, dAxDy)
	A.Set(4, 1, dAyDy)
	A.Set(5, 1, dAzDy)
	A.Set(3, 2, dAxDz)
	A.Set(4, 2, dAyDz)
	A.Set(5, 2, dAzDz)
	return A
}
