package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stellarsignals/pulsatmo/core"
	"github.com/stellarsignals/pulsatmo/internal/logging"
	"github.com/stellarsignals/pulsatmo/internal/observability"
	"github.com/stellarsignals/pulsatmo/profile"
)

func main() {
	profilePath := flag.String("profile", "testdata/profile.json", "Path to a JSON model profile")
	degree := flag.Int("degree", 1, "Spherical harmonic degree l; lambda = l(l+1)")
	omegaRe := flag.Float64("omega", 1.0, "Real part of the dimensionless wave frequency")
	omegaIm := flag.Float64("omega-imag", 0, "Imaginary part of the frequency; non-zero selects the complex solver")
	branchName := flag.String("branch", "energy-decaying", "Branch selector for the complex solver")
	formName := flag.String("formulation", "unno", "Coefficient formulation: unno | isothermal")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics; empty disables")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	branch, err := core.ParseBranch(*branchName)
	if err != nil {
		log.Error(ctx, "invalid branch selector", logging.String("branch", *branchName), logging.String("error", err.Error()))
		os.Exit(1)
	}
	form, err := core.ParseFormulation(*formName)
	if err != nil {
		log.Error(ctx, "invalid formulation", logging.String("formulation", *formName), logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}

	collector, err := observability.NewAtmosCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	f, err := os.Open(*profilePath)
	if err != nil {
		log.Error(ctx, "failed to open profile", logging.String("path", *profilePath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	prof, err := profile.Load(f)
	f.Close()
	if err != nil {
		log.Error(ctx, "failed to load profile", logging.String("path", *profilePath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	collector.ProfilePoints.Set(float64(prof.Len()))

	cfg := scanConfig{
		Formulation: form,
		Branch:      branch,
		Omega:       complex(*omegaRe, *omegaIm),
		Lambda:      float64(*degree * (*degree + 1)),
	}
	solver := core.NewWavenumberSolver(log, collector)

	log.Info(ctx, "scanning profile",
		logging.String("profile", prof.Name()),
		logging.Int("points", prof.Len()),
		logging.Int("degree", *degree),
		logging.Float64("omega", *omegaRe),
		logging.Float64("omega_imag", *omegaIm),
		logging.String("branch", branch.String()),
		logging.String("formulation", form.String()),
	)

	tracer := otel.Tracer("atmoscan")
	ctx, span := tracer.Start(ctx, "profile-sweep", trace.WithAttributes(
		attribute.String("profile.name", prof.Name()),
		attribute.Int("profile.points", prof.Len()),
		attribute.Int("wave.degree", *degree),
		attribute.String("wave.branch", branch.String()),
	))

	rows, err := scanProfile(prof, cfg, solver, collector)
	if err != nil {
		span.RecordError(err)
		span.End()
		log.Error(ctx, "sweep failed", logging.String("error", err.Error()))
		observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
		os.Exit(1)
	}
	span.End()

	if err := writeRows(os.Stdout, rows); err != nil {
		log.Error(ctx, "failed to write results", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsSrv.Shutdown(shutdownCtx)
		cancel()
	}
	observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
}

func serveMetrics(addr string, collector *observability.AtmosCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
