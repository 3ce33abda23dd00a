package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/infrastructure/cache"
	"github.com/syncworks/backend/internal/infrastructure/logger"
	"github.com/syncworks/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader names the client supplied retry key
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks a response served from the store
	IdempotentReplayHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// IdempotencyStore claims keys and records responses
type IdempotencyStore interface {
	Begin(ctx context.Context, key string, ttl time.Duration) (*cache.RecordedResponse, bool, error)
	Complete(ctx context.Context, key string, resp cache.RecordedResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// IdempotencyConfig configures the Idempotency middleware
type IdempotencyConfig struct {
	Store  IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func idempotencyScope(c *gin.Context, key string) string {
	sum := sha256.Sum256([]byte(c.Request.Method + " " + c.Request.URL.Path + "\n" + key))
	return hex.EncodeToString(sum[:])
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key on the same method and path. Requests without the header
// pass through. A store outage disables deduplication rather than failing
// the request.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	log := cfg.Logger.Named("idempotency")

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || cfg.Store == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key must be at most 255 characters",
				c.GetString(logger.GinRequestIDKey),
			))
			return
		}

		ctx := c.Request.Context()
		scope := idempotencyScope(c, key)

		recorded, acquired, err := cfg.Store.Begin(ctx, scope, cfg.TTL)
		if err != nil {
			log.Warn("idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if recorded != nil {
			c.Header(IdempotentReplayHeader, "true")
			c.Data(recorded.Status, recorded.ContentType, recorded.Body)
			c.Abort()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeConflict,
				"A request with this Idempotency-Key is still being processed",
				c.GetString(logger.GinRequestIDKey),
			))
			return
		}

		w := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = w
		storeCtx := context.WithoutCancel(ctx)

		// a panicking handler never reaches the code below; free the key so
		// the client can retry once recovery has answered
		finished := false
		defer func() {
			if finished {
				return
			}
			if err := cfg.Store.Release(storeCtx, scope); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
		}()
		c.Next()
		finished = true

		status := w.Status()
		if status < 200 || status >= 300 {
			if err := cfg.Store.Release(storeCtx, scope); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
			return
		}
		resp := cache.RecordedResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := cfg.Store.Complete(storeCtx, scope, resp, cfg.TTL); err != nil {
			log.Warn("failed to record idempotent response", zap.Error(err))
		}
	}
}
