package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrCutoffOrdering reports a cutoff-frequency pair that came out of the
// quadratic unordered (or undefined). It indicates an invalid input
// combination, e.g. an inconsistent sign of the leading coefficient.
var ErrCutoffOrdering = errors.New("cutoff frequencies out of order")

// CutoffFrequencies returns the low and high cutoff frequencies bounding
// the propagation band of the atmosphere, from the quadratic in ω² built
// out of the structure coefficients and the harmonic degree parameter λ.
//
// The ordering hi ≥ lo is a checked postcondition: rather than hand an
// inconsistent pair to the boundary-condition solver, a violation returns
// ErrCutoffOrdering with both values zeroed.
func CutoffFrequencies(co StructureCoeffs, lambda float64) (lo, hi float64, err error) {
	vg := co.V / co.Gamma1

	a := -4 * vg * co.C1 * co.C1
	b := ((co.As-vg-4)*(co.As-vg-4) + 4*vg*co.As + 4*lambda) * co.C1
	c := -4 * lambda * co.As

	d := math.Sqrt(b*b - 4*a*c)
	lo = math.Sqrt((-b + d) / (2 * a))
	hi = math.Sqrt((-b - d) / (2 * a))

	// The negated comparison also rejects NaN from square roots of
	// negative intermediates.
	if !(hi >= lo) {
		return 0, 0, fmt.Errorf("%w: omega_lo=%g omega_hi=%g", ErrCutoffOrdering, lo, hi)
	}
	return lo, hi, nil
}
