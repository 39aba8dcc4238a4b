package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestCollectorCountsSolvesAndFallbacks(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAtmosCollector(reg)
	if err != nil {
		t.Fatalf("NewAtmosCollector: %v", err)
	}

	collector.WavenumberSolves.WithLabelValues("real", "none").Inc()
	collector.WavenumberSolves.WithLabelValues("complex", "flux-outward").Inc()
	collector.WavenumberSolves.WithLabelValues("complex", "flux-outward").Inc()
	collector.DiscriminantFallbacks.Inc()

	if got := testutil.ToFloat64(collector.WavenumberSolves.WithLabelValues("real", "none")); got != 1 {
		t.Errorf("real solves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.WavenumberSolves.WithLabelValues("complex", "flux-outward")); got != 2 {
		t.Errorf("complex flux-outward solves = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.DiscriminantFallbacks); got != 1 {
		t.Errorf("fallbacks = %v, want 1", got)
	}
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAtmosCollector(reg)
	if err != nil {
		t.Fatalf("NewAtmosCollector: %v", err)
	}

	collector.CoeffEvaluations.WithLabelValues("isothermal").Inc()
	// A label vector with no children emits nothing, so give the solves
	// vector a sample before asserting on the scrape body.
	collector.WavenumberSolves.WithLabelValues("real", "none").Inc()
	collector.CutoffEvaluations.Inc()
	collector.ProfilePoints.Set(128)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"atmos_coeff_evaluations_total",
		"atmos_wavenumber_solves_total",
		"atmos_discriminant_fallbacks_total",
		"atmos_cutoff_evaluations_total",
		"atmos_profile_points",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %q in /metrics output", metric)
		}
	}
	if !strings.Contains(body, "128") {
		t.Errorf("/metrics output missing profile_points gauge value: %s", body)
	}
}

func TestCollectorLabelsGathered(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAtmosCollector(reg)
	if err != nil {
		t.Fatalf("NewAtmosCollector: %v", err)
	}

	collector.CoeffEvaluations.WithLabelValues("unno").Add(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var found *dto.Metric
	for _, fam := range families {
		if fam.GetName() != "atmos_coeff_evaluations_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "formulation" && label.GetValue() == "unno" {
					found = m
				}
			}
		}
	}
	if found == nil {
		t.Fatal("no atmos_coeff_evaluations_total sample with formulation=unno")
	}
	if got := found.GetCounter().GetValue(); got != 3 {
		t.Errorf("counter value = %v, want 3", got)
	}
}

func TestCollectorTwiceOnSameRegistryReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewAtmosCollector(reg)
	if err != nil {
		t.Fatalf("first NewAtmosCollector: %v", err)
	}
	second, err := NewAtmosCollector(reg)
	if err != nil {
		t.Fatalf("second NewAtmosCollector: %v", err)
	}

	first.CutoffEvaluations.Inc()
	second.CutoffEvaluations.Inc()

	if got := testutil.ToFloat64(first.CutoffEvaluations); got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}
