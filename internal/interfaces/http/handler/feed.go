package handler

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const (
	feedBufferSize   = 64
	feedReadLimit    = 512
	feedPongWait     = 60 * time.Second
	feedWriteWait    = 10 * time.Second
	feedDefaultPing  = 20 * time.Second
	feedDefaultLimit = 1000
)

// Feed message types besides the quote event types
const (
	FeedMessageConnected = "connected"
)

// FeedMessage is one JSON frame pushed to dashboard clients
type FeedMessage struct {
	Type        string    `json:"type"`
	QuoteID     uuid.UUID `json:"quote_id"`
	QuoteNumber string    `json:"quote_number,omitempty"`
	CompanyID   uuid.UUID `json:"company_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type feedClient struct {
	id        string
	companyID uuid.UUID
	userID    uuid.UUID
	send      chan FeedMessage
	done      chan struct{}
	closeOnce sync.Once
}

func (fc *feedClient) close() {
	fc.closeOnce.Do(func() { close(fc.done) })
}

// FeedHub pushes quote lifecycle events to connected dashboards over
// websockets. It is subscribed to the event bus like any other handler;
// each client only receives events of its own company.
type FeedHub struct {
	BaseHandler
	logger       *zap.Logger
	clients      sync.Map // map[string]*feedClient
	count        atomic.Int64
	maxClients   int
	pingInterval time.Duration
	upgrader     websocket.Upgrader
	ctx          context.Context
	cancel       context.CancelFunc
}

// FeedOption configures a FeedHub
type FeedOption func(*FeedHub)

// WithFeedLogger sets the hub logger
func WithFeedLogger(logger *zap.Logger) FeedOption {
	return func(h *FeedHub) {
		h.logger = logger
	}
}

// WithFeedMaxClients caps concurrent connections. Zero means no cap.
func WithFeedMaxClients(max int) FeedOption {
	return func(h *FeedHub) {
		h.maxClients = max
	}
}

// WithFeedPingInterval sets how often pings are written
func WithFeedPingInterval(d time.Duration) FeedOption {
	return func(h *FeedHub) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

// WithFeedOrigins restricts the Origin header of upgrade requests.
// "*" allows any origin; an empty list keeps the same-origin check.
func WithFeedOrigins(origins []string) FeedOption {
	return func(h *FeedHub) {
		if len(origins) == 0 {
			return
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(origins, "*") || slices.Contains(origins, origin)
		}
	}
}

// NewFeedHub creates a hub. Call Stop on shutdown.
func NewFeedHub(opts ...FeedOption) *FeedHub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &FeedHub{
		logger:       zap.NewNop(),
		maxClients:   feedDefaultLimit,
		pingInterval: feedDefaultPing,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes implements shared.EventHandler
func (h *FeedHub) EventTypes() []string {
	return []string{
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteBooked,
		quote.EventTypeQuoteCompleted,
		quote.EventTypeQuoteCancelled,
		quote.EventTypeQuoteExpired,
	}
}

// Handle implements shared.EventHandler. It never fails: slow clients are
// disconnected instead of blocking the publisher.
func (h *FeedHub) Handle(_ context.Context, event shared.DomainEvent) error {
	h.broadcast(FeedMessage{
		Type:        event.EventType(),
		QuoteID:     event.AggregateID(),
		QuoteNumber: quoteNumberOf(event),
		CompanyID:   event.CompanyID(),
		OccurredAt:  event.OccurredAt(),
	})
	return nil
}

func quoteNumberOf(event shared.DomainEvent) string {
	switch e := event.(type) {
	case *quote.QuoteSubmittedEvent:
		return e.QuoteNumber
	case *quote.QuoteBookedEvent:
		return e.QuoteNumber
	case *quote.QuoteCompletedEvent:
		return e.QuoteNumber
	case *quote.QuoteCancelledEvent:
		return e.QuoteNumber
	case *quote.QuoteExpiredEvent:
		return e.QuoteNumber
	}
	return ""
}

func (h *FeedHub) broadcast(msg FeedMessage) {
	h.clients.Range(func(_, value any) bool {
		client, ok := value.(*feedClient)
		if !ok || client.companyID != msg.CompanyID {
			return true
		}
		select {
		case client.send <- msg:
		case <-client.done:
		default:
			// full buffer: the client fell behind
			h.logger.Warn("Feed client too slow, disconnecting",
				zap.String("client_id", client.id),
				zap.String("type", msg.Type))
			client.close()
		}
		return true
	})
}

// ClientCount returns the number of connected clients
func (h *FeedHub) ClientCount() int {
	return int(h.count.Load())
}

// Stop disconnects every client
func (h *FeedHub) Stop() {
	h.cancel()
	h.clients.Range(func(_, value any) bool {
		if client, ok := value.(*feedClient); ok {
			client.close()
		}
		return true
	})
}

// Stream godoc
// @Summary      Live quote feed
// @Description  Websocket that pushes quote submitted, booked, completed, cancelled and expired events of the caller's company. Browsers may pass the token as ?access_token=.
// @Tags         dashboards
// @Param        access_token query string false "Access token for clients that cannot set headers"
// @Success      101
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboards/feed [get]
func (h *FeedHub) Stream(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	if h.ctx.Err() != nil {
		h.Error(c, http.StatusServiceUnavailable, "FEED_STOPPED", "Live feed is shutting down")
		return
	}
	if h.maxClients > 0 && h.ClientCount() >= h.maxClients {
		h.Error(c, http.StatusServiceUnavailable, "MAX_CONNECTIONS_REACHED", "Maximum number of feed connections reached")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the request
		h.logger.Debug("Feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	client := &feedClient{
		id:        uuid.NewString(),
		companyID: companyID,
		userID:    middleware.GetUserID(c),
		send:      make(chan FeedMessage, feedBufferSize),
		done:      make(chan struct{}),
	}
	h.clients.Store(client.id, client)
	h.count.Add(1)
	defer func() {
		h.clients.Delete(client.id)
		h.count.Add(-1)
		client.close()
	}()

	h.logger.Info("Feed client connected",
		zap.String("client_id", client.id),
		zap.String("company_id", companyID.String()),
		zap.String("user_id", client.userID.String()))

	go h.readPump(conn, client)

	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	if err := conn.WriteJSON(FeedMessage{
		Type:       FeedMessageConnected,
		CompanyID:  companyID,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		return
	}

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(feedWriteWait))
			return
		case <-client.done:
			return
		case msg := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(feedWriteWait)); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and keeps the read deadline alive on pongs.
// Any read error, including a close frame, ends the connection.
func (h *FeedHub) readPump(conn *websocket.Conn, client *feedClient) {
	defer client.close()
	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Feed client read error", zap.String("client_id", client.id), zap.Error(err))
			}
			return
		}
	}
}
