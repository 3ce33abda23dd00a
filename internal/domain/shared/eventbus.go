package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler wants.
	// An empty slice subscribes to everything.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// PublishAndClear publishes the aggregate's pending events and clears them.
// A nil publisher drops the events.
func PublishAndClear(ctx context.Context, publisher EventPublisher, agg AggregateRoot) error {
	events := agg.GetDomainEvents()
	agg.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return nil
	}
	return publisher.Publish(ctx, events...)
}

// EventCollector is an EventPublisher that holds events until Flush, so a
// unit of work can publish only after it commits
type EventCollector struct {
	events []DomainEvent
}

// Publish buffers the events
func (c *EventCollector) Publish(_ context.Context, events ...DomainEvent) error {
	c.events = append(c.events, events...)
	return nil
}

// Len returns the number of buffered events
func (c *EventCollector) Len() int { return len(c.events) }

// Flush hands the buffered events to publisher and empties the buffer.
// A nil publisher drops them.
func (c *EventCollector) Flush(ctx context.Context, publisher EventPublisher) error {
	events := c.events
	c.events = nil
	if publisher == nil || len(events) == 0 {
		return nil
	}
	return publisher.Publish(ctx, events...)
}
