package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartSpan starts an internal span on the global provider
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span failed. A nil error leaves the span untouched.
func RecordError(span trace.Span, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TracedJob wraps a background job so every run gets its own root span and
// pprof job label. It matches scheduler.JobFunc.
func TracedJob(name string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) (err error) {
		ctx, span := tracer().Start(ctx, "job "+name,
			trace.WithNewRoot(),
			trace.WithAttributes(AttrJob.String(name)),
		)
		defer span.End()

		start := time.Now()
		WithProfilingLabels(ctx, map[string]string{ProfilingLabelJob: name}, func(ctx context.Context) {
			err = fn(ctx)
		})
		span.SetAttributes(attribute.Int64("job.duration_ms", time.Since(start).Milliseconds()))
		RecordError(span, err)
		return err
	}
}
