package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResourceFromRoute(t *testing.T) {
	tests := []struct {
		route    string
		expected string
	}{
		{"/api/v1/quotes/:id/book", "quotes"},
		{"/api/v1/public/companies/:code/quotes", "public"},
		{"/api/v2/dashboards/admin", "dashboards"},
		{"/health", "health"},
		{"/api/v1", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, resourceFromRoute(tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("v12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("vans"))
	assert.False(t, isVersionSegment("quotes"))
}

func TestProfiling_Labels(t *testing.T) {
	router := gin.New()
	router.Use(Profiling(true))
	got := map[string]string{}
	router.GET("/api/v1/quotes/:id", func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(k, v string) bool {
			got[k] = v
			return true
		})
		c.Status(http.StatusOK)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/quotes/7", nil))

	assert.Equal(t, "/api/v1/quotes/:id", got["route"])
	assert.Equal(t, http.MethodGet, got["method"])
	assert.Equal(t, "quotes", got["operation"])
}

func TestProfiling_SkipsProbesAndDisabled(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		router := gin.New()
		router.Use(Profiling(enabled))
		labelled := false
		handler := func(c *gin.Context) {
			pprof.ForLabels(c.Request.Context(), func(string, string) bool {
				labelled = true
				return false
			})
			c.Status(http.StatusOK)
		}
		router.GET("/health", handler)
		router.GET("/api/v1/trucks", handler)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.False(t, labelled)
		if !enabled {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/trucks", nil))
			assert.False(t, labelled)
		}
	}
}
