package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stellarsignals/pulsatmo/model"
)

// tableModel is a minimal model.Model for tests: one grid point with fixed
// coefficient values.
type tableModel struct {
	values map[model.Coefficient]float64
	err    error
}

func (m *tableModel) Coeff(c model.Coefficient, pt model.Point) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	v, ok := m.values[c]
	if !ok {
		return 0, errors.New("coefficient not tabulated")
	}
	return v, nil
}

func TestEvaluateCoeffsUnno(t *testing.T) {
	m := &tableModel{values: map[model.Coefficient]float64{
		model.CoeffV2:     4.0,
		model.CoeffAs:     0.5,
		model.CoeffC1:     1.2,
		model.CoeffGamma1: 5.0 / 3.0,
	}}
	pt := model.Point{Index: 0, X: 0.5}

	co, err := EvaluateCoeffs(m, pt, FormulationUnno)
	if err != nil {
		t.Fatalf("EvaluateCoeffs: %v", err)
	}

	// V is the model's V_2 rescaled by x².
	if got, want := co.V, 4.0*0.5*0.5; got != want {
		t.Errorf("V = %v, want %v", got, want)
	}
	if co.As != 0.5 {
		t.Errorf("As = %v, want 0.5", co.As)
	}
	if co.C1 != 1.2 {
		t.Errorf("C1 = %v, want 1.2", co.C1)
	}
	if co.Gamma1 != 5.0/3.0 {
		t.Errorf("Gamma1 = %v, want 5/3", co.Gamma1)
	}
}

func TestEvaluateCoeffsIsothermal(t *testing.T) {
	// The isothermal formulation ignores the model's buoyancy coefficient
	// entirely, so leave it untabulated to prove it is never looked up.
	m := &tableModel{values: map[model.Coefficient]float64{
		model.CoeffV2:     4.0,
		model.CoeffC1:     1.0,
		model.CoeffGamma1: 1.6667,
	}}
	pt := model.Point{Index: 0, X: 0.5}

	co, err := EvaluateCoeffs(m, pt, FormulationIsothermal)
	if err != nil {
		t.Fatalf("EvaluateCoeffs: %v", err)
	}

	if co.V != 1.0 {
		t.Errorf("V = %v, want 1.0", co.V)
	}
	want := 1.0 * (1 - 1/1.6667)
	if math.Abs(co.As-want) > 1e-12 {
		t.Errorf("As = %v, want %v", co.As, want)
	}
	if math.Abs(co.As-0.4) > 1e-4 {
		t.Errorf("As = %v, want ~0.4", co.As)
	}
}

func TestEvaluateCoeffsPropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("model exploded")
	m := &tableModel{err: lookupErr}

	_, err := EvaluateCoeffs(m, model.Point{X: 0.5}, FormulationUnno)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("err = %v, want wrapped %v", err, lookupErr)
	}
}

func TestEvaluateCoeffsUnknownFormulation(t *testing.T) {
	m := &tableModel{values: map[model.Coefficient]float64{
		model.CoeffV2:     4.0,
		model.CoeffAs:     0.5,
		model.CoeffC1:     1.0,
		model.CoeffGamma1: 5.0 / 3.0,
	}}

	_, err := EvaluateCoeffs(m, model.Point{X: 0.5}, Formulation(99))
	if !errors.Is(err, ErrUnknownFormulation) {
		t.Fatalf("err = %v, want ErrUnknownFormulation", err)
	}
}

func TestParseFormulation(t *testing.T) {
	cases := []struct {
		name    string
		want    Formulation
		wantErr bool
	}{
		{"unno", FormulationUnno, false},
		{"", FormulationUnno, false},
		{"isothermal", FormulationIsothermal, false},
		{"adiabatic", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseFormulation(tc.name)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownFormulation) {
				t.Errorf("ParseFormulation(%q) err = %v, want ErrUnknownFormulation", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormulation(%q): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormulation(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
