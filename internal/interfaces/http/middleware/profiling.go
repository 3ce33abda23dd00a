package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/infrastructure/telemetry"
)

// quietRoutes are probes not worth labelling
var quietRoutes = map[string]bool{
	"/health":             true,
	"/api/v1/system/ping": true,
}

// Profiling attaches route, method and resource pprof labels to the request
// so Pyroscope can slice CPU samples per endpoint.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || quietRoutes[route] || strings.HasPrefix(route, "/swagger") {
			c.Next()
			return
		}
		labels := map[string]string{
			telemetry.ProfilingLabelRoute:     route,
			telemetry.ProfilingLabelMethod:    c.Request.Method,
			telemetry.ProfilingLabelOperation: resourceFromRoute(route),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// resourceFromRoute returns the first static segment after the API prefix:
// "/api/v1/quotes/:id/book" -> "quotes", "/api/v1/public/companies/:code" -> "public"
func resourceFromRoute(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) || strings.HasPrefix(part, ":") {
			continue
		}
		return part
	}
	return ""
}

func isVersionSegment(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
