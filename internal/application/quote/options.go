package quote

import (
	"time"

	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Option configures a QuoteService
type Option func(*QuoteService)

// WithPublisher publishes quote events after each save
func WithPublisher(p shared.EventPublisher) Option {
	return func(s *QuoteService) { s.publisher = p }
}

// WithStorage enables attachments and PDF archiving
func WithStorage(storage ObjectStorage) Option {
	return func(s *QuoteService) { s.storage = storage }
}

// WithRenderer enables PDF export
func WithRenderer(r DocumentRenderer) Option {
	return func(s *QuoteService) { s.renderer = r }
}

// WithTruckScheduler lets Book reserve trucks
func WithTruckScheduler(t TruckScheduler) Option {
	return func(s *QuoteService) { s.trucks = t }
}

// WithBookingScope makes Book store the quote and its truck reservations
// in one transaction
func WithBookingScope(scope BookingScope) Option {
	return func(s *QuoteService) { s.booking = scope }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *QuoteService) { s.logger = logger }
}

// WithQuoteTTL sets how long an open quote lives before ExpireStale closes it
func WithQuoteTTL(ttl time.Duration) Option {
	return func(s *QuoteService) {
		if ttl > 0 {
			s.quoteTTL = ttl
		}
	}
}

// WithCurrency sets the ISO currency printed on documents
func WithCurrency(code string) Option {
	return func(s *QuoteService) {
		if code != "" {
			s.currency = code
		}
	}
}

// WithAttachmentConfig overrides presign expiry and upload size limit
func WithAttachmentConfig(cfg AttachmentConfig) Option {
	return func(s *QuoteService) { s.attachments = cfg }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *QuoteService) { s.now = now }
}
