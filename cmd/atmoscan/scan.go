package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/stellarsignals/pulsatmo/core"
	"github.com/stellarsignals/pulsatmo/internal/observability"
	"github.com/stellarsignals/pulsatmo/profile"
)

// scanConfig fixes the wave parameters for a profile sweep.
type scanConfig struct {
	Formulation core.Formulation
	Branch      core.Branch
	Omega       complex128
	Lambda      float64
}

// scanRow is one output line: the boundary quantities at a grid point.
type scanRow struct {
	X       float64 `json:"x"`
	V       float64 `json:"v"`
	As      float64 `json:"a_star"`
	C1      float64 `json:"c_1"`
	Gamma1  float64 `json:"gamma_1"`
	ChiRe   float64 `json:"chi_re"`
	ChiIm   float64 `json:"chi_im,omitempty"`
	OmegaLo float64 `json:"omega_lo"`
	OmegaHi float64 `json:"omega_hi"`
}

// scanProfile evaluates structure coefficients, the radial wavenumber, and
// the cutoff frequencies at every grid point of the profile. A non-zero
// imaginary frequency component routes through the complex solver with the
// configured branch; otherwise the real-frequency path is used.
func scanProfile(prof *profile.Profile, cfg scanConfig, solver *core.WavenumberSolver, collector *observability.AtmosCollector) ([]scanRow, error) {
	rows := make([]scanRow, 0, prof.Len())

	for i := 0; i < prof.Len(); i++ {
		pt, err := prof.Point(i)
		if err != nil {
			return nil, err
		}

		co, err := core.EvaluateCoeffs(prof, pt, cfg.Formulation)
		if err != nil {
			return nil, fmt.Errorf("coefficients at x=%g: %w", pt.X, err)
		}
		if collector != nil {
			collector.CoeffEvaluations.WithLabelValues(cfg.Formulation.String()).Inc()
		}

		row := scanRow{X: pt.X, V: co.V, As: co.As, C1: co.C1, Gamma1: co.Gamma1}

		if imag(cfg.Omega) != 0 {
			chi, err := solver.Complex(co, cfg.Omega, complex(cfg.Lambda, 0), cfg.Branch)
			if err != nil {
				return nil, fmt.Errorf("wavenumber at x=%g: %w", pt.X, err)
			}
			row.ChiRe, row.ChiIm = real(chi), imag(chi)
		} else {
			row.ChiRe = solver.Real(co, real(cfg.Omega), cfg.Lambda)
		}

		lo, hi, err := core.CutoffFrequencies(co, cfg.Lambda)
		if err != nil {
			return nil, fmt.Errorf("cutoff frequencies at x=%g: %w", pt.X, err)
		}
		if collector != nil {
			collector.CutoffEvaluations.Inc()
		}
		row.OmegaLo, row.OmegaHi = lo, hi

		rows = append(rows, row)
	}

	return rows, nil
}

// writeRows emits one JSON object per line.
func writeRows(w io.Writer, rows []scanRow) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
