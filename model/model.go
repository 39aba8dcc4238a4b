package model

import "fmt"

// Coefficient names a dimensionless structure coefficient that a stellar
// model can be queried for at a grid point.
type Coefficient int

const (
	// CoeffV2 is V_2 = V/x², the pressure scale-height coefficient before
	// rescaling by the squared fractional radius.
	CoeffV2 Coefficient = iota
	// CoeffAs is A*, the dimensionless Schwarzschild (buoyancy) discriminant.
	CoeffAs
	// CoeffC1 is c₁, the local-to-mean density structure coefficient.
	CoeffC1
	// CoeffGamma1 is Γ₁, the first adiabatic exponent.
	CoeffGamma1
)

// String returns the conventional symbol for the coefficient.
func (c Coefficient) String() string {
	switch c {
	case CoeffV2:
		return "V_2"
	case CoeffAs:
		return "A*"
	case CoeffC1:
		return "c_1"
	case CoeffGamma1:
		return "Gamma_1"
	default:
		return fmt.Sprintf("Coefficient(%d)", int(c))
	}
}

// Point locates a sample on a model's radial grid.
type Point struct {
	// Index is the position of the sample within the model's grid.
	Index int
	// X is the fractional radius r/R of the sample.
	X float64
}

// Model supplies dimensionless structure coefficients at grid points.
// Implementations must be safe for concurrent use; the boundary evaluators
// call Coeff from whichever goroutine owns the eigenvalue search.
type Model interface {
	Coeff(c Coefficient, pt Point) (float64, error)
}
