package core

import (
	"errors"
	"fmt"

	"github.com/stellarsignals/pulsatmo/model"
)

// StructureCoeffs bundles the four dimensionless coefficients describing
// the stellar structure at a single grid point. They are produced fresh on
// every evaluation and carry no identity beyond the call.
type StructureCoeffs struct {
	// V is the pressure scale-height coefficient, V_2 · x².
	V float64
	// As is the buoyancy (Schwarzschild discriminant) coefficient A*.
	As float64
	// C1 is the local-to-mean density coefficient c₁.
	C1 float64
	// Gamma1 is the first adiabatic exponent Γ₁.
	Gamma1 float64
}

// Formulation selects the physical approximation used when evaluating the
// structure coefficients at the outer boundary.
type Formulation int

const (
	// FormulationUnno takes all four coefficients directly from the model
	// (the general formulation).
	FormulationUnno Formulation = iota
	// FormulationIsothermal replaces the model's buoyancy coefficient with
	// the value implied by an isothermal, massless outer layer:
	// A* = V·(1 − 1/Γ₁).
	FormulationIsothermal
)

// ErrUnknownFormulation reports a formulation value outside the declared set.
var ErrUnknownFormulation = errors.New("unknown atmosphere formulation")

// String returns the formulation name as used in configuration.
func (f Formulation) String() string {
	switch f {
	case FormulationUnno:
		return "unno"
	case FormulationIsothermal:
		return "isothermal"
	default:
		return fmt.Sprintf("Formulation(%d)", int(f))
	}
}

// ParseFormulation maps a configuration name to a Formulation.
func ParseFormulation(name string) (Formulation, error) {
	switch name {
	case "unno", "":
		return FormulationUnno, nil
	case "isothermal":
		return FormulationIsothermal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormulation, name)
	}
}

// EvaluateCoeffs pulls the structure coefficients for a grid point out of
// the model. V_2 is rescaled by the point's squared fractional radius to
// yield V. Lookup failures from the model propagate unchanged.
func EvaluateCoeffs(m model.Model, pt model.Point, f Formulation) (StructureCoeffs, error) {
	v2, err := m.Coeff(model.CoeffV2, pt)
	if err != nil {
		return StructureCoeffs{}, err
	}
	c1, err := m.Coeff(model.CoeffC1, pt)
	if err != nil {
		return StructureCoeffs{}, err
	}
	gamma1, err := m.Coeff(model.CoeffGamma1, pt)
	if err != nil {
		return StructureCoeffs{}, err
	}

	co := StructureCoeffs{
		V:      v2 * pt.X * pt.X,
		C1:     c1,
		Gamma1: gamma1,
	}

	switch f {
	case FormulationUnno:
		as, err := m.Coeff(model.CoeffAs, pt)
		if err != nil {
			return StructureCoeffs{}, err
		}
		co.As = as
	case FormulationIsothermal:
		co.As = co.V * (1 - 1/co.Gamma1)
	default:
		return StructureCoeffs{}, fmt.Errorf("%w: %d", ErrUnknownFormulation, int(f))
	}

	return co, nil
}
