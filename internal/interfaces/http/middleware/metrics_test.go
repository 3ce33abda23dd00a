package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/infrastructure/telemetry"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	mw, err := HTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/api/v1/trucks/:id", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.Param("id")}) })

	for _, path := range []string{"/api/v1/trucks/1", "/api/v1/trucks/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	requests, ok := byName["http.server.requests"]
	require.True(t, ok)
	counts := map[string]int64{}
	for _, dp := range requests.Data.(metricdata.Sum[int64]).DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		status, _ := dp.Attributes.Value(telemetry.AttrHTTPStatusCode)
		counts[route.AsString()+" "+status.Emit()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"/api/v1/trucks/:id 200": 2,
		"unmatched 404":          1,
	}, counts)

	duration, ok := byName["http.server.request.duration"]
	require.True(t, ok)
	var samples uint64
	for _, dp := range duration.Data.(metricdata.Histogram[float64]).DataPoints {
		samples += dp.Count
	}
	assert.Equal(t, uint64(3), samples)

	active, ok := byName["http.server.active_requests"]
	require.True(t, ok)
	for _, dp := range active.Data.(metricdata.Sum[int64]).DataPoints {
		assert.Zero(t, dp.Value)
	}
}
