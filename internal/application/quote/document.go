package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PDFExport is a rendered quote document
type PDFExport struct {
	FileName string
	Content  []byte
	// ArchiveKey is set when a copy was stored in object storage
	ArchiveKey string
}

// ExportPDF renders the quote as a PDF. When storage is configured a copy
// is archived next to the quote's attachments; archive failures are logged
// and do not fail the export.
func (s *QuoteService) ExportPDF(ctx context.Context, companyID, id uuid.UUID) (*PDFExport, error) {
	if s.renderer == nil {
		return nil, ErrRendererDisabled
	}
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	co, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	doc := QuoteDocument{
		CompanyName:    co.Name,
		CompanyEmail:   co.ContactEmail,
		CompanyPhone:   co.ContactPhone,
		CompanyAddress: co.Address,
		Currency:       s.currency,
		Quote:          ToQuoteResponse(q),
		GeneratedAt:    s.now(),
	}

	content, err := s.renderer.RenderQuote(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render quote %s: %w", q.QuoteNumber, err)
	}

	out := &PDFExport{FileName: q.QuoteNumber + ".pdf", Content: content}

	if s.storage != nil {
		key := fmt.Sprintf("quotes/%s/%s/%s", companyID, q.ID, out.FileName)
		switch err := s.storage.Upload(ctx, key, content, "application/pdf"); {
		case err == nil:
			out.ArchiveKey = key
		case errors.Is(err, ErrStorageDisabled):
		default:
			s.logger.Warn("failed to archive quote pdf", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
