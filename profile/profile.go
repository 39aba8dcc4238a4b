package profile

import (
	"errors"
	"fmt"

	"github.com/stellarsignals/pulsatmo/model"
)

var (
	ErrEmptyProfile       = errors.New("profile has no grid points")
	ErrPointOutOfRange    = errors.New("point index out of range")
	ErrPointMismatch      = errors.New("point does not match profile grid")
	ErrCoefficientUnknown = errors.New("unknown structure coefficient")
	ErrBadRadius          = errors.New("fractional radius out of range")
)

// Record holds the tabulated structure coefficients at one radial grid
// point. X is the fractional radius r/R.
type Record struct {
	X      float64
	V2     float64
	As     float64
	C1     float64
	Gamma1 float64
}

// Profile is a table-backed stellar model over a radial grid. It is
// immutable after construction and therefore safe for concurrent use by the
// boundary evaluators.
type Profile struct {
	name    string
	records []Record
}

// New constructs a profile from tabulated records. Records must be ordered
// by increasing fractional radius; the outermost point is the model surface.
func New(name string, records []Record) (*Profile, error) {
	if len(records) == 0 {
		return nil, ErrEmptyProfile
	}
	for i, rec := range records {
		if rec.X < 0 || rec.X > 1 {
			return nil, fmt.Errorf("%w: x=%g at record %d", ErrBadRadius, rec.X, i)
		}
		if i > 0 && rec.X <= records[i-1].X {
			return nil, fmt.Errorf("grid not strictly increasing at record %d (x=%g)", i, rec.X)
		}
	}
	recs := make([]Record, len(records))
	copy(recs, records)
	return &Profile{name: name, records: recs}, nil
}

// Name returns the profile's display name.
func (p *Profile) Name() string { return p.name }

// Len returns the number of radial grid points.
func (p *Profile) Len() int { return len(p.records) }

// Point returns the grid point at index i.
func (p *Profile) Point(i int) (model.Point, error) {
	if i < 0 || i >= len(p.records) {
		return model.Point{}, fmt.Errorf("%w: %d (grid has %d points)", ErrPointOutOfRange, i, len(p.records))
	}
	return model.Point{Index: i, X: p.records[i].X}, nil
}

// Surface returns the outermost grid point, where the atmosphere boundary
// conditions are evaluated.
func (p *Profile) Surface() model.Point {
	i := len(p.records) - 1
	return model.Point{Index: i, X: p.records[i].X}
}

// Coeff implements model.Model by direct table lookup. The point's
// fractional radius must agree with the grid entry at its index; a mismatch
// means the point belongs to a different model.
func (p *Profile) Coeff(c model.Coefficient, pt model.Point) (float64, error) {
	if pt.Index < 0 || pt.Index >= len(p.records) {
		return 0, fmt.Errorf("%w: %d (grid has %d points)", ErrPointOutOfRange, pt.Index, len(p.records))
	}
	rec := p.records[pt.Index]
	if rec.X != pt.X {
		return 0, fmt.Errorf("%w: index %d has x=%g, point has x=%g", ErrPointMismatch, pt.Index, rec.X, pt.X)
	}

	switch c {
	case model.CoeffV2:
		return rec.V2, nil
	case model.CoeffAs:
		return rec.As, nil
	case model.CoeffC1:
		return rec.C1, nil
	case model.CoeffGamma1:
		return rec.Gamma1, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrCoefficientUnknown, c)
	}
}
