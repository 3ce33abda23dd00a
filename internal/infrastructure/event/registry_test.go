package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerRegistry_Register(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newRecordingHandler()

	registry.Register(handler, "QuoteBooked", "QuoteCancelled")

	assert.Len(t, registry.GetHandlers("QuoteBooked"), 1)
	assert.Len(t, registry.GetHandlers("QuoteCancelled"), 1)
	assert.Empty(t, registry.GetHandlers("QuoteSubmitted"))
	assert.ElementsMatch(t, []string{"QuoteBooked", "QuoteCancelled"}, registry.EventTypes())
}

func TestHandlerRegistry_Register_Idempotent(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newRecordingHandler()

	registry.Register(handler, "QuoteBooked")
	registry.Register(handler, "QuoteBooked")
	registry.Register(handler)
	registry.Register(handler)

	// once for the type, once as wildcard
	assert.Len(t, registry.GetHandlers("QuoteBooked"), 2)
	assert.Equal(t, 1, registry.Count())
}

func TestHandlerRegistry_TypedBeforeWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcard := newRecordingHandler()
	typed := newRecordingHandler()

	registry.Register(wildcard)
	registry.Register(typed, "ShiftCreated")

	handlers := registry.GetHandlers("ShiftCreated")
	require.Len(t, handlers, 2)
	assert.Same(t, typed, handlers[0])
	assert.Same(t, wildcard, handlers[1])
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	a := newRecordingHandler()
	b := newRecordingHandler()

	registry.Register(a, "QuoteBooked", "QuoteCompleted")
	registry.Register(b, "QuoteBooked")
	registry.Register(a)

	registry.Unregister(a)

	handlers := registry.GetHandlers("QuoteBooked")
	require.Len(t, handlers, 1)
	assert.Same(t, b, handlers[0])
	assert.Empty(t, registry.GetHandlers("QuoteCompleted"))
	assert.Equal(t, []string{"QuoteBooked"}, registry.EventTypes())
	assert.Equal(t, 1, registry.Count())
}
