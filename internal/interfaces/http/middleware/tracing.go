package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request. Register SpanEnricher right
// after it so the span carries the caller once auth has run.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// SpanEnricher adds request, company and user IDs to the active span after
// the handler chain has run, and marks error responses.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		markSpanStatus(span, c.Writer.Status())
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	attrs := make([]attribute.KeyValue, 0, 4)
	for _, key := range []string{logger.GinRequestIDKey, logger.GinCompanyIDKey, logger.GinUserIDKey, JWTRoleKey} {
		if v := c.GetString(key); v != "" {
			name := key
			if key == JWTRoleKey {
				name = "role"
			}
			attrs = append(attrs, attribute.String(name, v))
		}
	}
	span.SetAttributes(attrs...)
}

// markSpanStatus flags 5xx as errors. 4xx are client outcomes and only get
// the error status when the server refused to serve (auth, limits).
func markSpanStatus(span trace.Span, status int) {
	switch {
	case status >= http.StatusInternalServerError:
		span.SetStatus(codes.Error, http.StatusText(status))
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusTooManyRequests:
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
