package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
)

// ErrStorageDisabled is returned by the object storage stand-in used when
// no bucket is configured
var ErrStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Attachment storage is not configured")

// ErrRendererDisabled is returned when PDF export is not available
var ErrRendererDisabled = shared.NewDomainError("PDF_DISABLED", "PDF export is not configured")

// ObjectStorage stores quote attachments and exported documents
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
	DeleteObject(ctx context.Context, key string) error
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Pricer applies season rules to a base price
type Pricer interface {
	Calculate(ctx context.Context, companyID uuid.UUID, base decimal.Decimal, day time.Time) (pricing.SeasonAdjustment, error)
}

// TruckScheduler reserves trucks for a booked move
type TruckScheduler interface {
	AssignTrucks(ctx context.Context, companyID, quoteID uuid.UUID, day time.Time, truckIDs []uuid.UUID) error
}

// BookingScope stores a booking as one unit: the quote and its truck
// reservations are committed together or not at all. Events published
// inside the scope go to publisher.
type BookingScope interface {
	Execute(ctx context.Context, publisher shared.EventPublisher, fn func(repos BookingRepositories) error) error
}

// BookingRepositories are bound to one booking
type BookingRepositories interface {
	QuoteRepo() quote.QuoteRepository
	Trucks() TruckScheduler
}

// directBookingScope uses the service's own repositories without a
// transaction. Used when no BookingScope is configured.
type directBookingScope struct {
	quotes quote.QuoteRepository
	trucks TruckScheduler
}

func (d directBookingScope) Execute(_ context.Context, _ shared.EventPublisher, fn func(repos BookingRepositories) error) error {
	return fn(d)
}

func (d directBookingScope) QuoteRepo() quote.QuoteRepository { return d.quotes }

func (d directBookingScope) Trucks() TruckScheduler { return d.trucks }

// DocumentRenderer turns a quote into a PDF
type DocumentRenderer interface {
	RenderQuote(ctx context.Context, doc QuoteDocument) ([]byte, error)
}

// QuoteDocument is everything printed on a quote PDF
type QuoteDocument struct {
	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
	Currency       string
	Quote          QuoteResponse
	GeneratedAt    time.Time
}
