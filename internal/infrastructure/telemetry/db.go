package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBConfig controls GORM instrumentation
type DBConfig struct {
	TraceEnabled       bool
	LogFullSQL         bool // query variables end up in spans; dev only
	SlowQueryThreshold time.Duration
	DBName             string
}

const startTimeKey = "telemetry:start"

// DBMetrics records query latency and exposes connection pool gauges
type DBMetrics struct {
	duration     metric.Float64Histogram
	errors       metric.Int64Counter
	registration metric.Registration
	slow         time.Duration
	logger       *zap.Logger
}

// InstrumentDB registers otelgorm tracing (when enabled), slow query logging
// and query metrics on db. A nil meter skips metrics.
func InstrumentDB(db *gorm.DB, cfg DBConfig, meter metric.Meter, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return nil, fmt.Errorf("failed to register otelgorm: %w", err)
		}
	}

	m := &DBMetrics{slow: cfg.SlowQueryThreshold, logger: logger.Named("db")}
	if meter != nil {
		if err := m.initInstruments(db, meter); err != nil {
			return nil, err
		}
	}
	if err := registerTimingCallbacks(db, m.before, m.after); err != nil {
		return nil, fmt.Errorf("failed to register db callbacks: %w", err)
	}

	logger.Info("database instrumentation enabled",
		zap.Bool("tracing", cfg.TraceEnabled),
		zap.Bool("metrics", meter != nil),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
	)
	return m, nil
}

func (m *DBMetrics) initInstruments(db *gorm.DB, meter metric.Meter) error {
	var err error
	m.duration, err = meter.Float64Histogram("db.client.query.duration",
		metric.WithDescription("Duration of database queries"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("failed to create query duration histogram: %w", err)
	}
	m.errors, err = meter.Int64Counter("db.client.query.errors",
		metric.WithDescription("Failed database queries"),
	)
	if err != nil {
		return fmt.Errorf("failed to create query error counter: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	open, err := meter.Int64ObservableGauge("db.client.connections.open")
	if err != nil {
		return err
	}
	inUse, err := meter.Int64ObservableGauge("db.client.connections.in_use")
	if err != nil {
		return err
	}
	idle, err := meter.Int64ObservableGauge("db.client.connections.idle")
	if err != nil {
		return err
	}
	waits, err := meter.Int64ObservableCounter("db.client.connections.wait_count")
	if err != nil {
		return err
	}
	m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(idle, int64(s.Idle))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, idle, waits)
	if err != nil {
		return fmt.Errorf("failed to register pool stats callback: %w", err)
	}
	return nil
}

// Stop unregisters the pool stats callback
func (m *DBMetrics) Stop() error {
	if m == nil || m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

func (m *DBMetrics) before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func (m *DBMetrics) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		failed := db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)

		attrs := metric.WithAttributes(
			AttrDBOperation.String(operation),
			AttrDBTable.String(db.Statement.Table),
		)
		if m.duration != nil {
			m.duration.Record(ctx, elapsed.Seconds(), attrs)
		}
		if failed && m.errors != nil {
			m.errors.Add(ctx, 1, attrs)
		}

		if m.slow > 0 && elapsed >= m.slow {
			span := trace.SpanFromContext(ctx)
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.duration_ms", elapsed.Milliseconds()),
			)
			m.logger.Warn("slow query",
				zap.String("operation", operation),
				zap.String("table", db.Statement.Table),
				zap.Duration("elapsed", elapsed),
				zap.Int64("rows", db.RowsAffected),
			)
		}
	}
}

func registerTimingCallbacks(db *gorm.DB, before func(*gorm.DB), after func(string) func(*gorm.DB)) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("telemetry:before_create", before),
		cb.Create().After("gorm:create").Register("telemetry:after_create", after("create")),
		cb.Query().Before("gorm:query").Register("telemetry:before_query", before),
		cb.Query().After("gorm:query").Register("telemetry:after_query", after("select")),
		cb.Update().Before("gorm:update").Register("telemetry:before_update", before),
		cb.Update().After("gorm:update").Register("telemetry:after_update", after("update")),
		cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", before),
		cb.Delete().After("gorm:delete").Register("telemetry:after_delete", after("delete")),
		cb.Row().Before("gorm:row").Register("telemetry:before_row", before),
		cb.Row().After("gorm:row").Register("telemetry:after_row", after("row")),
		cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", before),
		cb.Raw().After("gorm:raw").Register("telemetry:after_raw", after("raw")),
	)
}
