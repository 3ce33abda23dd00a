// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope continuous profiling into the SyncWorks backend.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syncworks/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/syncworks/backend"

const shutdownTimeout = 10 * time.Second

// Config is the telemetry configuration shared by every provider
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
	MetricsInterval   time.Duration
	LogsEnabled       bool

	ProfilingEnabled       bool
	ProfilingServerAddress string
}

// ConfigFromApp maps the application config section onto Config
func ConfigFromApp(cfg config.TelemetryConfig, version string) Config {
	return Config{
		Enabled:                cfg.Enabled,
		CollectorEndpoint:      cfg.CollectorEndpoint,
		SamplingRatio:          cfg.SamplingRatio,
		ServiceName:            cfg.ServiceName,
		ServiceVersion:         version,
		Insecure:               cfg.Insecure,
		MetricsInterval:        cfg.MetricsInterval,
		LogsEnabled:            cfg.LogsEnabled,
		ProfilingEnabled:       cfg.ProfilingEnabled,
		ProfilingServerAddress: cfg.ProfilingServerAddress,
	}
}

func newResource(cfg Config) (*resource.Resource, error) {
	version := cfg.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Providers bundles every telemetry component started by Setup
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts tracing, metrics, log export and profiling. Disabled parts
// come back as no-op providers so callers never nil-check.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Providers{}

	var err error
	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		_ = p.Tracer.Shutdown(ctx)
		return nil, err
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		_ = p.Meter.Shutdown(ctx)
		_ = p.Tracer.Shutdown(ctx)
		return nil, err
	}
	if p.Profiler, err = NewProfiler(ProfilerConfigFrom(cfg), logger); err != nil {
		_ = p.Logs.Shutdown(ctx)
		_ = p.Meter.Shutdown(ctx)
		_ = p.Tracer.Shutdown(ctx)
		return nil, err
	}

	// span profiles need a running profiler
	if p.Profiler.IsRunning() {
		p.Tracer.EnableSpanProfiles()
	}
	return p, nil
}

// Shutdown flushes and stops the providers in reverse start order
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
