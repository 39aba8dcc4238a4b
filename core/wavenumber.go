package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/stellarsignals/pulsatmo/internal/logging"
	"github.com/stellarsignals/pulsatmo/internal/observability"
)

// Branch selects between the two roots of the complex characteristic
// discriminant by a physical criterion rather than by mathematical
// convention. The zero value, BranchEnergyDecaying, is the default.
type Branch int

const (
	// BranchEnergyDecaying keeps the root whose wave energy density decays
	// with radius (an atmosphere that traps its oscillation energy).
	BranchEnergyDecaying Branch = iota
	// BranchEnergyGrowing keeps the root whose wave energy density grows
	// with radius.
	BranchEnergyGrowing
	// BranchFluxOutward keeps the root carrying energy flux outward.
	BranchFluxOutward
	// BranchFluxInward keeps the root carrying energy flux inward.
	BranchFluxInward
	// BranchPhaseOutward keeps the root whose phase velocity points outward.
	BranchPhaseOutward
	// BranchPhaseInward keeps the root whose phase velocity points inward.
	BranchPhaseInward
)

// ErrUnknownBranch reports a branch selector outside the declared set.
var ErrUnknownBranch = errors.New("unknown branch selector")

// String returns the branch name as used in configuration.
func (b Branch) String() string {
	switch b {
	case BranchEnergyDecaying:
		return "energy-decaying"
	case BranchEnergyGrowing:
		return "energy-growing"
	case BranchFluxOutward:
		return "flux-outward"
	case BranchFluxInward:
		return "flux-inward"
	case BranchPhaseOutward:
		return "phase-outward"
	case BranchPhaseInward:
		return "phase-inward"
	default:
		return fmt.Sprintf("Branch(%d)", int(b))
	}
}

// ParseBranch maps a configuration name to a Branch. The empty string
// selects the default, energy-decaying branch.
func ParseBranch(name string) (Branch, error) {
	switch name {
	case "energy-decaying", "":
		return BranchEnergyDecaying, nil
	case "energy-growing":
		return BranchEnergyGrowing, nil
	case "flux-outward":
		return BranchFluxOutward, nil
	case "flux-inward":
		return BranchFluxInward, nil
	case "phase-outward":
		return BranchPhaseOutward, nil
	case "phase-inward":
		return BranchPhaseInward, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBranch, name)
	}
}

// WavenumberSolver computes the radial wavenumber χ of a wave solution at
// the outer boundary. The solver owns the "already warned" state for the
// real-frequency discriminant fallback, so a single solver should be shared
// for the lifetime of a computation; all methods are safe for concurrent
// use.
type WavenumberSolver struct {
	log     logging.Logger
	metrics *observability.AtmosCollector

	fallbackNotice sync.Once
}

// NewWavenumberSolver constructs a solver. A nil logger is replaced with a
// no-op logger; a nil collector disables metrics.
func NewWavenumberSolver(log logging.Logger, collector *observability.AtmosCollector) *WavenumberSolver {
	if log == nil {
		log = logging.Noop()
	}
	return &WavenumberSolver{log: log, metrics: collector}
}

// charCoeffsReal forms the trace and determinant invariants of the 2×2
// characteristic matrix, returning the quadratic coefficients of
// χ² + bχ + c = 0.
func charCoeffsReal(co StructureCoeffs, omega, lambda float64) (b, c float64) {
	vg := co.V / co.Gamma1
	a11 := vg - 3
	a12 := lambda/(co.C1*omega*omega) - vg
	a21 := co.C1*omega*omega - co.As
	a22 := co.As + 1
	return -(a11 + a22), a11*a22 - a12*a21
}

// Real solves the characteristic quadratic for a real frequency ω and
// harmonic degree parameter λ (typically ℓ(ℓ+1)).
//
// When the discriminant is negative the two roots form a complex-conjugate
// pair; the imaginary part is discarded, χ = −b/2, and a notice is logged
// at most once per solver lifetime. Every fallback occurrence is still
// counted in the metrics.
func (s *WavenumberSolver) Real(co StructureCoeffs, omega, lambda float64) float64 {
	b, c := charCoeffsReal(co, omega, lambda)
	psi2 := b*b - 4*c

	if s.metrics != nil {
		s.metrics.WavenumberSolves.WithLabelValues("real", "none").Inc()
	}

	if psi2 < 0 {
		if s.metrics != nil {
			s.metrics.DiscriminantFallbacks.Inc()
		}
		s.fallbackNotice.Do(func() {
			s.log.Warn(context.Background(),
				"negative wavenumber discriminant; discarding imaginary part",
				logging.Any("psi2", psi2))
		})
		return -b / 2
	}

	// Evaluate whichever root expression keeps b and √psi2 from cancelling.
	if b >= 0 {
		return (-b - math.Sqrt(psi2)) / 2
	}
	return 2 * c / (-b + math.Sqrt(psi2))
}

// Complex solves the characteristic quadratic for a complex frequency ω and
// harmonic degree parameter λ, disambiguating the two roots with the given
// branch selector. An unrecognized selector returns ErrUnknownBranch and no
// result; such rejected calls do not count as solves in the metrics.
func (s *WavenumberSolver) Complex(co StructureCoeffs, omega, lambda complex128, branch Branch) (complex128, error) {
	vg := complex(co.V/co.Gamma1, 0)
	c1 := complex(co.C1, 0)
	as := complex(co.As, 0)

	a11 := vg - 3
	a12 := lambda/(c1*omega*omega) - vg
	a21 := c1*omega*omega - as
	a22 := as + 1

	b := -(a11 + a22)
	c := a11*a22 - a12*a21

	psi := cmplx.Sqrt(b*b - 4*c)
	keep, err := branchKeeps(branch, psi, a11, omega)
	if err != nil {
		return 0, err
	}
	if !keep {
		psi = -psi
	}

	if s.metrics != nil {
		s.metrics.WavenumberSolves.WithLabelValues("complex", branch.String()).Inc()
	}

	// Same cancellation-avoiding root choice as the real path.
	if (real(psi) >= 0) == (real(b) >= 0) {
		return -2 * c / (b + psi), nil
	}
	return (-b + psi) / 2, nil
}

// branchKeeps reports whether the principal square root psi already lies on
// the physically requested branch. Each rule tests the sign of the physical
// quantity the selector names; the caller negates psi when the test fails.
func branchKeeps(branch Branch, psi, a11, omega complex128) (bool, error) {
	switch branch {
	case BranchEnergyGrowing:
		return real(psi) >= 0, nil
	case BranchEnergyDecaying:
		return real(psi) <= 0, nil
	case BranchFluxOutward:
		return imag((psi-a11)*cmplx.Conj(omega)) >= 0, nil
	case BranchFluxInward:
		return imag((psi-a11)*cmplx.Conj(omega)) <= 0, nil
	case BranchPhaseOutward:
		return imag(psi)/real(omega) >= 0, nil
	case BranchPhaseInward:
		return imag(psi)/real(omega) <= 0, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownBranch, int(branch))
	}
}
