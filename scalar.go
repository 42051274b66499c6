package orbdiff

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Ops is the arithmetic a force model may use on its scalar type. Writing the
// equations of motion against Ops lets the exact same code run on plain floats
// and on derivative-tracking dual numbers.
type Ops[T any] interface {
	// Lift turns a plain real into a constant of the scalar type (zero derivative).
	Lift(v float64) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Sqrt(a T) T
	// Pow raises a to a constant real power.
	Pow(a T, p float64) T
}

// RealOps implements Ops on float64 for plain evaluation.
type RealOps struct{}

// Lift returns v itself.
func (RealOps) Lift(v float64) float64 { return v }

// Add returns a+b.
func (RealOps) Add(a, b float64) float64 { return a + b }

// Sub returns a-b.
func (RealOps) Sub(a, b float64) float64 { return a - b }

// Mul returns a*b.
func (RealOps) Mul(a, b float64) float64 { return a * b }

// Div returns a/b.
func (RealOps) Div(a, b float64) float64 { return a / b }

// Sqrt returns the square root of a.
func (RealOps) Sqrt(a float64) float64 { return math.Sqrt(a) }

// Pow returns a^p.
func (RealOps) Pow(a float64, p float64) float64 { return math.Pow(a, p) }

// DualOps implements Ops on dual numbers: every operation also propagates the
// exact directional derivative carried in Emag.
type DualOps struct{}

// Lift returns v as a dual constant, i.e. with a zero derivative part.
func (DualOps) Lift(v float64) dual.Number { return dual.Number{Real: v} }

// Add returns a+b.
func (DualOps) Add(a, b dual.Number) dual.Number { return dual.Add(a, b) }

// Sub returns a-b.
func (DualOps) Sub(a, b dual.Number) dual.Number { return dual.Sub(a, b) }

// Mul returns a*b.
func (DualOps) Mul(a, b dual.Number) dual.Number { return dual.Mul(a, b) }

// Div returns a/b.
func (DualOps) Div(a, b dual.Number) dual.Number { return dual.Mul(a, dual.Inv(b)) }

// Sqrt returns the square root of a.
func (DualOps) Sqrt(a dual.Number) dual.Number { return dual.Sqrt(a) }

// Pow returns a^p.
func (DualOps) Pow(a dual.Number, p float64) dual.Number { return dual.PowReal(a, p) }
