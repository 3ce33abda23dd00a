package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	trucks := NewDomainGroup("trucks", "/trucks")
	trucks.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	r := NewRouter(engine).Register(trucks)
	assert.Len(t, r.registrars, 1)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/trucks/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("employees", "/employees")
	ok := func(status int) gin.HandlerFunc {
		return func(c *gin.Context) { c.Status(status) }
	}
	g.GET("", ok(http.StatusOK)).
		POST("", ok(http.StatusCreated)).
		PUT("/:id", ok(http.StatusOK)).
		PATCH("/:id", ok(http.StatusAccepted)).
		DELETE("/:id", ok(http.StatusNoContent))
	g.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, "employees", g.Name())
	assert.Equal(t, "/employees", g.Prefix())
	assert.Equal(t, 5, g.RouteCount())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/employees", http.StatusOK},
		{http.MethodPost, "/api/v1/employees", http.StatusCreated},
		{http.MethodPut, "/api/v1/employees/7", http.StatusOK},
		{http.MethodPatch, "/api/v1/employees/7", http.StatusAccepted},
		{http.MethodDelete, "/api/v1/employees/7", http.StatusNoContent},
		{http.MethodGet, "/api/v1/trucks", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(engine, tt.method, tt.path).Code)
		})
	}
}

func TestDomainGroup_MiddlewareReachesSubgroups(t *testing.T) {
	engine := gin.New()
	fleet := NewDomainGroup("fleet", "").Use(func(c *gin.Context) {
		c.Header("X-Fleet", "1")
		c.Next()
	})
	fleet.Group("trucks", "/trucks").GET("", func(c *gin.Context) { c.String(http.StatusOK, "trucks") })
	fleet.Group("employees", "/employees").GET("", func(c *gin.Context) { c.String(http.StatusOK, "employees") })

	NewRouter(engine).Register(fleet).Setup()
	assert.Equal(t, 2, fleet.RouteCount())

	for _, path := range []string{"/api/v1/trucks", "/api/v1/employees"} {
		w := serve(engine, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "1", w.Header().Get("X-Fleet"), path)
	}
}

func TestChain_SkipsNil(t *testing.T) {
	h := func(c *gin.Context) {}
	assert.Len(t, chain(nil, h, nil), 1)
	assert.Empty(t, chain())
}
