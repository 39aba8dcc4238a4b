package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AtmosCollector bundles Prometheus metrics for the atmosphere boundary
// evaluators and provides a ready-to-serve /metrics handler.
type AtmosCollector struct {
	gatherer prometheus.Gatherer

	// CoeffEvaluations counts structure-coefficient evaluations, labeled
	// by formulation.
	CoeffEvaluations *prometheus.CounterVec
	// WavenumberSolves counts completed wavenumber computations, labeled
	// by solver path (real or complex) and the branch selector in effect
	// ("none" on the real path). Calls rejected with an unknown branch
	// selector produce no result and are not counted; real-path fallback
	// solves still return a value and are.
	WavenumberSolves *prometheus.CounterVec
	// DiscriminantFallbacks counts real-path solves that hit the negative
	// discriminant fallback. The log notice fires once per solver; this
	// counter records every occurrence.
	DiscriminantFallbacks prometheus.Counter
	// CutoffEvaluations counts cutoff-frequency computations.
	CutoffEvaluations prometheus.Counter
	// ProfilePoints reports the grid size of the loaded model profile.
	ProfilePoints prometheus.Gauge
}

// NewAtmosCollector registers the atmosphere metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewAtmosCollector(reg prometheus.Registerer) (*AtmosCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	coeffs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atmos_coeff_evaluations_total",
		Help: "Total structure-coefficient evaluations, labeled by formulation.",
	}, []string{"formulation"})
	coeffs, err := registerCounterVec(reg, coeffs, "atmos_coeff_evaluations_total")
	if err != nil {
		return nil, err
	}

	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atmos_wavenumber_solves_total",
		Help: "Total radial-wavenumber solves, labeled by path and branch selector.",
	}, []string{"path", "branch"})
	solves, err = registerCounterVec(reg, solves, "atmos_wavenumber_solves_total")
	if err != nil {
		return nil, err
	}

	fallbacks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atmos_discriminant_fallbacks_total",
		Help: "Real-frequency solves where a negative discriminant forced the chi = -b/2 fallback.",
	}), "atmos_discriminant_fallbacks_total")
	if err != nil {
		return nil, err
	}

	cutoffs, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "atmos_cutoff_evaluations_total",
		Help: "Total cutoff-frequency evaluations.",
	}), "atmos_cutoff_evaluations_total")
	if err != nil {
		return nil, err
	}

	points, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atmos_profile_points",
		Help: "Number of radial grid points in the loaded model profile.",
	}), "atmos_profile_points")
	if err != nil {
		return nil, err
	}

	return &AtmosCollector{
		gatherer:              gatherer,
		CoeffEvaluations:      coeffs,
		WavenumberSolves:      solves,
		DiscriminantFallbacks: fallbacks,
		CutoffEvaluations:     cutoffs,
		ProfilePoints:         points,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *AtmosCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
