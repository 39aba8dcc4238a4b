package profile

import (
	"encoding/json"
	"fmt"
	"io"
)

// internal JSON shapes - keep them unexported so we're free to evolve them.
type profileJSON struct {
	Name   string      `json:"name"`
	Points []pointJSON `json:"points"`
}

type pointJSON struct {
	X      float64 `json:"x"`
	V2     float64 `json:"v_2"`
	As     float64 `json:"a_star"`
	C1     float64 `json:"c_1"`
	Gamma1 float64 `json:"gamma_1"`
}

// Load reads a JSON profile from r and constructs a Profile. It fails on
// JSON errors and on grid-structure errors (empty table, non-monotonic
// radii); coefficient values themselves are taken as-is, since their
// physical validity is the concern of whatever produced the model.
func Load(r io.Reader) (*Profile, error) {
	var payload profileJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("profile.Load: decode failed: %w", err)
	}

	records := make([]Record, 0, len(payload.Points))
	for _, jp := range payload.Points {
		records = append(records, Record{
			X:      jp.X,
			V2:     jp.V2,
			As:     jp.As,
			C1:     jp.C1,
			Gamma1: jp.Gamma1,
		})
	}

	prof, err := New(payload.Name, records)
	if err != nil {
		return nil, fmt.Errorf("profile.Load: %w", err)
	}
	return prof, nil
}
