package handler

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/infrastructure/logger"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
	"github.com/syncworks/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// healthCheckTimeout bounds each dependency probe of /health
const healthCheckTimeout = 2 * time.Second

// DatabaseProbe is the part of persistence.Database the health check uses
type DatabaseProbe interface {
	Ping() error
	Stats() (persistence.ConnectionStats, error)
}

// CheckFunc probes one optional dependency such as Redis
type CheckFunc func(ctx context.Context) error

// BuildInfo describes the running binary
type BuildInfo struct {
	Name     string
	Version  string
	Env      string
	Features map[string]bool
}

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	info      BuildInfo
	db        DatabaseProbe
	checks    map[string]CheckFunc
	startTime time.Time
	now       func() time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil in tests.
func NewSystemHandler(info BuildInfo, db DatabaseProbe) *SystemHandler {
	return &SystemHandler{
		info:      info,
		db:        db,
		checks:    make(map[string]CheckFunc),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// AddCheck registers an extra dependency probe for /health. A failing
// extra check degrades the status but keeps a 200.
func (h *SystemHandler) AddCheck(name string, fn CheckFunc) {
	h.checks[name] = fn
}

// HealthResponse is the /health body
// @name HandlerHealthResponse
type HealthResponse struct {
	Status   string                           `json:"status" example:"healthy"`
	Time     string                           `json:"time"`
	Database string                           `json:"database" example:"ok"`
	Pool     *persistence.ConnectionStats     `json:"pool,omitempty"`
	Checks   map[string]string                `json:"checks,omitempty"`
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Database ping with pool statistics, plus optional dependency checks
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	reqLog := logger.GetGinLogger(c)
	resp := HealthResponse{
		Status:   "healthy",
		Time:     h.now().UTC().Format(time.RFC3339),
		Database: "ok",
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			resp.Status = "unhealthy"
			resp.Database = "error"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		if stats, err := h.db.Stats(); err == nil {
			resp.Pool = &stats
		}
	}

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
		names := make([]string, 0, len(h.checks))
		for name := range h.checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			err := h.checks[name](ctx)
			cancel()
			if err != nil {
				reqLog.Warn("Dependency check failed", zap.String("check", name), zap.Error(err))
				resp.Checks[name] = "error"
				resp.Status = "degraded"
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string          `json:"name" example:"SyncWorks API"`
	Version   string          `json:"version" example:"1.0.0"`
	Env       string          `json:"env" example:"production"`
	GoVersion string          `json:"go_version" example:"go1.25.5"`
	Uptime    string          `json:"uptime" example:"1h30m45s"`
	Features  map[string]bool `json:"features,omitempty"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns version, uptime and which optional subsystems are enabled
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.info.Name,
		Version:   h.info.Version,
		Env:       h.info.Env,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Features:  h.info.Features,
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
