package printing

import (
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	quoteapp "github.com/syncworks/backend/internal/application/quote"
)

//go:embed templates/*.html
var templateFS embed.FS

const quoteTemplatePath = "templates/quote.html"

// quoteView adds derived line amounts to the document
type quoteView struct {
	quoteapp.QuoteDocument
	Labor     decimal.Decimal
	TruckFees decimal.Decimal
}

// QuotePDFRenderer renders quote documents through the embedded template
// and a PDFRenderer
type QuotePDFRenderer struct {
	engine    *TemplateEngine
	tmpl      *template.Template
	pdf       PDFRenderer
	paperSize PaperSize
}

// NewQuotePDFRenderer parses the quote template once up front
func NewQuotePDFRenderer(pdf PDFRenderer, paperSize PaperSize) (*QuotePDFRenderer, error) {
	if !paperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(paperSize), nil)
	}
	engine := NewTemplateEngine()
	tmpl, err := engine.ParseFS(templateFS, quoteTemplatePath)
	if err != nil {
		return nil, err
	}
	return &QuotePDFRenderer{engine: engine, tmpl: tmpl, pdf: pdf, paperSize: paperSize}, nil
}

// RenderHTML renders the quote document to HTML
func (r *QuotePDFRenderer) RenderHTML(doc quoteapp.QuoteDocument) (string, error) {
	q := doc.Quote
	view := quoteView{
		QuoteDocument: doc,
		Labor:         q.HourlyRate.Mul(decimal.NewFromInt(int64(q.CrewSize))).Mul(q.EstimatedHours).Round(2),
		TruckFees:     q.TruckFee.Mul(decimal.NewFromInt(int64(q.TruckCount))).Round(2),
	}
	return r.engine.Execute(r.tmpl, view)
}

// RenderQuote implements quote.DocumentRenderer
func (r *QuotePDFRenderer) RenderQuote(ctx context.Context, doc quoteapp.QuoteDocument) ([]byte, error) {
	html, err := r.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:       html,
		PaperSize:  r.paperSize,
		Margins:    DefaultMargins(),
		Title:      "Quote " + doc.Quote.QuoteNumber,
		FooterHTML: footerHTML(doc.Quote.QuoteNumber),
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// Close releases the underlying PDF renderer
func (r *QuotePDFRenderer) Close() error {
	return r.pdf.Close()
}

// footerHTML uses Chrome's pageNumber/totalPages placeholders
func footerHTML(quoteNumber string) string {
	return fmt.Sprintf(`<div style="font-size:8px;width:100%%;text-align:center;color:#888">%s &middot; page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`,
		template.HTMLEscapeString(quoteNumber))
}

var _ quoteapp.DocumentRenderer = (*QuotePDFRenderer)(nil)
