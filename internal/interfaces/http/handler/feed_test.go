package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/logger"
)

func newFeedServer(t *testing.T, hub *FeedHub) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/feed", func(c *gin.Context) {
		if company := c.Query("company"); company != "" {
			c.Set(logger.GinCompanyIDKey, company)
			c.Set(logger.GinUserIDKey, uuid.NewString())
		}
		c.Next()
	}, hub.Stream)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server, companyID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed?company=" + companyID.String()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	var hello FeedMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, FeedMessageConnected, hello.Type)
	assert.Equal(t, companyID, hello.CompanyID)
	return conn
}

func bookedEvent(companyID uuid.UUID, number string) shared.DomainEvent {
	q := &quote.Quote{QuoteNumber: number}
	q.ID = uuid.New()
	q.CompanyID = companyID
	return quote.NewQuoteBookedEvent(q)
}

func TestFeedHub_EventTypes(t *testing.T) {
	hub := NewFeedHub()
	defer hub.Stop()

	assert.ElementsMatch(t, []string{
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteBooked,
		quote.EventTypeQuoteCompleted,
		quote.EventTypeQuoteCancelled,
		quote.EventTypeQuoteExpired,
	}, hub.EventTypes())
}

func TestFeedHub_DeliversOnlyOwnCompanyEvents(t *testing.T) {
	hub := NewFeedHub()
	defer hub.Stop()
	srv := newFeedServer(t, hub)

	companyA, companyB := uuid.New(), uuid.New()
	connA := dialFeed(t, srv, companyA)
	connB := dialFeed(t, srv, companyB)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Handle(context.Background(), bookedEvent(companyA, "Q-2026-000001")))

	var msg FeedMessage
	require.NoError(t, connA.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, connA.ReadJSON(&msg))
	assert.Equal(t, quote.EventTypeQuoteBooked, msg.Type)
	assert.Equal(t, "Q-2026-000001", msg.QuoteNumber)
	assert.Equal(t, companyA, msg.CompanyID)

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	err := connB.ReadJSON(&msg)
	require.Error(t, err, "company B must not receive company A events")
}

func TestFeedHub_RequiresAuthentication(t *testing.T) {
	hub := NewFeedHub()
	defer hub.Stop()
	srv := newFeedServer(t, hub)

	resp, err := http.Get(srv.URL + "/feed")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedHub_MaxClients(t *testing.T) {
	hub := NewFeedHub(WithFeedMaxClients(1))
	defer hub.Stop()
	srv := newFeedServer(t, hub)

	companyID := uuid.New()
	dialFeed(t, srv, companyID)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/feed?company=" + companyID.String()
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeedHub_StopClosesClients(t *testing.T) {
	hub := NewFeedHub()
	srv := newFeedServer(t, hub)

	conn := dialFeed(t, srv, uuid.New())
	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/feed?company=" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestFeedHub_HandleWithoutClients(t *testing.T) {
	hub := NewFeedHub()
	defer hub.Stop()

	assert.NoError(t, hub.Handle(context.Background(), bookedEvent(uuid.New(), "Q-1")))
	assert.Equal(t, "", quoteNumberOf(shared.DomainEvent(nil)))
}

func TestFeedHub_DisconnectsSlowClient(t *testing.T) {
	hub := NewFeedHub()
	defer hub.Stop()

	companyID := uuid.New()
	slow := &feedClient{
		id:        "slow",
		companyID: companyID,
		userID:    uuid.New(),
		send:      make(chan FeedMessage, 1),
		done:      make(chan struct{}),
	}
	hub.clients.Store(slow.id, slow)

	require.NoError(t, hub.Handle(context.Background(), bookedEvent(companyID, "Q-1")))
	select {
	case <-slow.done:
		t.Fatal("client with room in its buffer was disconnected")
	default:
	}

	require.NoError(t, hub.Handle(context.Background(), bookedEvent(companyID, "Q-2")))
	select {
	case <-slow.done:
	default:
		t.Fatal("client with a full buffer is still connected")
	}

	msg := <-slow.send
	assert.Equal(t, "Q-1", msg.QuoteNumber)
	// a closed client does not panic on later events
	assert.NoError(t, hub.Handle(context.Background(), bookedEvent(companyID, "Q-3")))
}
