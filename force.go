package orbdiff

import (
	"gonum.org/v1/gonum/num/dual"
)

/* Force models. State vectors are Cartesian [x y z vx vy vz] in km and km/s. */

// ForceModel computes the time derivative of a state vector. Eval and EvalDual
// must be the same arithmetic: EvalDual is how Derivatives reads the partials,
// so computing an intermediate from the Real part of a tracked value silently
// freezes its derivative.
type ForceModel interface {
	// Dimension returns the length of the state vectors this model accepts.
	Dimension() int
	// Eval returns the derivative of the state at time t (in seconds past an
	// arbitrary reference; inert for time-invariant fields).
	Eval(t float64, state []float64) []float64
	// EvalDual is Eval on derivative-tracking dual numbers.
	EvalDual(t float64, state []dual.Number) []dual.Number
}

// PointMassGravity is the two-body equation of motion about a celestial object.
// Precondition: the position norm must be strictly positive, it is not guarded.
type PointMassGravity struct {
	Center CelestialObject
}

// NewPointMassGravity returns the point mass gravity model of the given center.
func NewPointMassGravity(center CelestialObject) PointMassGravity {
	return PointMassGravity{center}
}

// Dimension returns 6.
func (PointMassGravity) Dimension() int { return 6 }

// Eval returns [vx vy vz ax ay az] at the given state, t being inert.
func (p PointMassGravity) Eval(t float64, state []float64) []float64 {
	return twoBodyAccel[float64](RealOps{}, p.Center.μ, state)
}

// EvalDual is Eval on dual numbers.
func (p PointMassGravity) EvalDual(t float64, state []dual.Number) []dual.Number {
	return twoBodyAccel[dual.Number](DualOps{}, p.Center.μ, state)
}

// String implements the Stringer interface.
func (p PointMassGravity) String() string {
	return "point mass gravity about " + p.Center.Name
}

// twoBodyAccel does the math. Written once against Ops so that the plain and the
// tracked evaluations cannot drift apart.
func twoBodyAccel[T any](op Ops[T], μ float64, f []T) []T {
	x, y, z := f[0], f[1], f[2]
	r := op.Sqrt(op.Add(op.Add(op.Mul(x, x), op.Mul(y, y)), op.Mul(z, z)))
	bodyAcc := op.Div(op.Lift(-μ), op.Mul(op.Mul(r, r), r))
	fDot := make([]T, 6)
	// d\vec{R}/dt
	fDot[0] = f[3]
	fDot[1] = f[4]
	fDot[2] = f[5]
	// d\vec{V}/dt
	fDot[3] = op.Mul(bodyAcc, x)
	fDot[4] = op.Mul(bodyAcc, y)
	fDot[5] = op.Mul(bodyAcc, z)
	return fDot
}
