package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{Enabled: true, ServiceName: "syncworks-test", SamplingRatio: 1}
}

func newTestMeterProvider(t *testing.T) (*MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp, err := newMeterProvider(testConfig(), reader, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func attrValue(set attribute.Set, key attribute.Key) string {
	v, ok := set.Value(key)
	if !ok {
		return ""
	}
	return v.Emit()
}

func TestConfigFromApp(t *testing.T) {
	cfg := ConfigFromApp(config.TelemetryConfig{
		Enabled:                true,
		CollectorEndpoint:      "otel:4317",
		SamplingRatio:          0.25,
		ServiceName:            "syncworks",
		Insecure:               true,
		MetricsInterval:        15 * time.Second,
		LogsEnabled:            true,
		ProfilingEnabled:       true,
		ProfilingServerAddress: "http://pyroscope:4040",
	}, "1.4.0")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "otel:4317", cfg.CollectorEndpoint)
	assert.Equal(t, 0.25, cfg.SamplingRatio)
	assert.Equal(t, "1.4.0", cfg.ServiceVersion)
	assert.Equal(t, 15*time.Second, cfg.MetricsInterval)
	assert.True(t, cfg.LogsEnabled)

	pc := ProfilerConfigFrom(cfg)
	assert.True(t, pc.Enabled)
	assert.Equal(t, "http://pyroscope:4040", pc.ServerAddress)
	assert.Equal(t, "syncworks", pc.ApplicationName)
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{ServiceName: "syncworks"}, nil)
	require.NoError(t, err)

	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Meter.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.False(t, p.Profiler.IsRunning())
	assert.False(t, p.Tracer.SpanProfilesEnabled())

	assert.NotNil(t, p.Meter.Meter("x"))
	assert.NotNil(t, p.Tracer.Tracer("x"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestProviders_ShutdownEmpty(t *testing.T) {
	assert.NoError(t, (&Providers{}).Shutdown(context.Background()))
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "syncworks"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")

	p, err := NewProfiler(ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsRunning())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestWithProfilingLabels(t *testing.T) {
	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)

	called = false
	WithProfilingLabels(context.Background(), map[string]string{ProfilingLabelJob: "expire_stale_quotes", "": "x"}, func(ctx context.Context) {
		called = true
		assert.NotNil(t, ctx)
	})
	assert.True(t, called)
}

func TestTruncateLabel(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, truncateLabel(string(long)), maxLabelValueLength)
	assert.Equal(t, "short", truncateLabel("short"))
}
