package orbdiff

import (
	"testing"

	"github.com/gonum/floats"
	"gonum.org/v1/gonum/num/dual"
)

// cubicSystem is x³ + 3x - 7, a single real root.
type cubicSystem struct{}

func (cubicSystem) Dimension() int { return 1 }

func (cubicSystem) Eval(t float64, x []float64) []float64 {
	return cubic[float64](RealOps{}, x)
}

func (cubicSystem) EvalDual(t float64, x []dual.Number) []dual.Number {
	return cubic[dual.Number](DualOps{}, x)
}

func cubic[T any](op Ops[T], x []T) []T {
	x3 := op.Mul(op.Mul(x[0], x[0]), x[0])
	return []T{op.Sub(op.Add(x3, op.Mul(op.Lift(3), x[0])), op.Lift(7))}
}

// coupledSystem is the pair x + (x-y)³/2 - 1, (y-x)³/2 + y.
type coupledSystem struct{}

func (coupledSystem) Dimension() int { return 2 }

func (coupledSystem) Eval(t float64, x []float64) []float64 {
	return coupled[float64](RealOps{}, x)
}

func (coupledSystem) EvalDual(t float64, x []dual.Number) []dual.Number {
	return coupled[dual.Number](DualOps{}, x)
}

func coupled[T any](op Ops[T], x []T) []T {
	d := op.Sub(x[0], x[1])
	d3 := op.Mul(op.Mul(d, d), d)
	e := op.Sub(x[1], x[0])
	e3 := op.Mul(op.Mul(e, e), e)
	half := op.Lift(0.5)
	return []T{
		op.Sub(op.Add(x[0], op.Mul(half, d3)), op.Lift(1)),
		op.Add(op.Mul(half, e3), x[1]),
	}
}

func TestNewtonRaphsonCubic(t *testing.T) {
	ans, err := NewtonRaphson(0, []float64{1}, cubicSystem{}, 1e-6)
	if err != nil {
		t.Fatalf("no convergence: %s", err)
	}
	// truth (from wolfram)
	sol := 1.406287579960534691140831
	if !floats.EqualWithinAbs(ans[0], sol, 1e-6) {
		t.Fatalf("root = %.12f", ans[0])
	}
}

func TestNewtonRaphsonCoupled(t *testing.T) {
	ans, err := NewtonRaphson(0, []float64{0, 0}, coupledSystem{}, 1e-6)
	if err != nil {
		t.Fatalf("no convergence: %s", err)
	}
	// value found using scipy.optimize.root
	sol := []float64{0.8411639, 0.1588361}
	for idx := 0; idx < 2; idx++ {
		if !floats.EqualWithinAbs(ans[idx], sol[idx], 1e-7) {
			t.Fatalf("root[%d] = %.12f", idx, ans[idx])
		}
	}
}

func TestNewtonRaphsonRootGuess(t *testing.T) {
	// A guess which already is a root must be returned untouched.
	root := 1.4062875799605347
	ans, err := NewtonRaphson(0, []float64{root}, cubicSystem{}, 1e-6)
	if err != nil {
		t.Fatalf("solve fail: %s", err)
	}
	if ans[0] != root {
		t.Fatalf("root guess was moved to %.16f", ans[0])
	}
}

func TestNewtonRaphsonDomainError(t *testing.T) {
	// The Jacobian domain failure at a zero position norm must propagate.
	if _, err := NewtonRaphson(0, []float64{0, 0, 0, 1, 2, 3}, NewPointMassGravity(Earth), 1e-6); err == nil {
		t.Fatal("expected a domain error at the origin")
	}
}

func TestNewtonRaphsonShapeMismatch(t *testing.T) {
	if _, err := NewtonRaphson(0, []float64{1, 2, 3, 4, 5, 6}, truncatedModel{}, 1e-6); err == nil {
		t.Fatal("expected an error for a 5 element output")
	}
}
