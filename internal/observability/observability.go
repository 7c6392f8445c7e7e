// Package observability wires the service's logging, metrics and tracing.
package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config holds observability settings.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	MetricsAddress string
	LogLevel       string
}

// Observability bundles the logger, metrics and tracer handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *Metrics
	Tracer   trace.Tracer
}

// Init builds the observability stack: a JSON slog logger on stdout, a
// dedicated prometheus registry with the service metrics registered, and the
// globally configured otel tracer (noop unless an SDK is installed by the
// deployment).
func Init(cfg Config) *Observability {
	return initWithWriter(cfg, os.Stdout)
}

func initWithWriter(cfg Config, w io.Writer) *Observability {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewMetrics(registry),
		Tracer:   otel.Tracer(cfg.ServiceName),
	}
}

// NoOp returns an observability bundle that discards everything. Tests only.
func NoOp() *Observability {
	return initWithWriter(Config{ServiceName: "test"}, io.Discard)
}
