package event

import (
	"context"

	"github.com/syncworks/backend/internal/domain/shared"
)

// FuncHandler adapts a plain function to shared.EventHandler
type FuncHandler struct {
	name       string
	eventTypes []string
	fn         func(ctx context.Context, ev shared.DomainEvent) error
}

// NewFuncHandler wraps fn as a handler for eventTypes
func NewFuncHandler(name string, fn func(ctx context.Context, ev shared.DomainEvent) error, eventTypes ...string) *FuncHandler {
	return &FuncHandler{name: name, eventTypes: eventTypes, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	return h.fn(ctx, ev)
}

func (h *FuncHandler) EventTypes() []string { return h.eventTypes }

func (h *FuncHandler) Name() string { return h.name }
