package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrintParams(t *testing.T) {
	t.Run("letter with default margins", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{PaperSize: PaperSizeLetter, Margins: DefaultMargins()})
		assert.InDelta(t, 8.5, p.paperWidth, 0.001)
		assert.InDelta(t, 11.0, p.paperHeight, 0.001)
		assert.InDelta(t, 12/25.4, p.marginTop, 0.0001)
		assert.InDelta(t, 12/25.4, p.marginBottom, 0.0001)
		assert.Empty(t, p.footerTemplate)
	})

	t.Run("a4 landscape", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{PaperSize: PaperSizeA4, Landscape: true})
		assert.InDelta(t, 210/25.4, p.paperWidth, 0.0001)
		assert.InDelta(t, 297/25.4, p.paperHeight, 0.0001)
		assert.True(t, p.landscape)
	})

	t.Run("footer widens bottom margin", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{
			PaperSize:  PaperSizeLetter,
			Margins:    DefaultMargins(),
			FooterHTML: "<span class=\"pageNumber\"></span>",
		})
		assert.InDelta(t, 15/25.4, p.marginBottom, 0.0001)
		assert.InDelta(t, 12/25.4, p.marginTop, 0.0001)
	})

	t.Run("footer keeps a larger margin", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{
			PaperSize:  PaperSizeLetter,
			Margins:    Margins{Bottom: 20},
			FooterHTML: "footer",
		})
		assert.InDelta(t, 20/25.4, p.marginBottom, 0.0001)
	})
}

func TestBuildDocument(t *testing.T) {
	t.Run("wraps fragments", func(t *testing.T) {
		doc := buildDocument(&RenderRequest{HTML: "<p>hello</p>", Title: "Quote <Q-1>"})
		assert.Contains(t, doc, "<!DOCTYPE html>")
		assert.Contains(t, doc, "<title>Quote &lt;Q-1&gt;</title>")
		assert.Contains(t, doc, "<body><p>hello</p></body>")
	})

	t.Run("passes full documents through", func(t *testing.T) {
		full := "<!doctype html><html><body>x</body></html>"
		assert.Equal(t, full, buildDocument(&RenderRequest{HTML: full, Title: "ignored"}))
	})
}

func TestCountPages(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Count 2 >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, countPages(pdf))
	assert.Equal(t, 1, countPages([]byte("garbage")))
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *RenderRequest
		code string
	}{
		{"nil request", nil, ErrCodeInvalidHTML},
		{"blank html", &RenderRequest{HTML: " \n", PaperSize: PaperSizeA4}, ErrCodeInvalidHTML},
		{"bad paper", &RenderRequest{HTML: "<p>x</p>", PaperSize: "legal"}, ErrCodeInvalidPaperSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}

	assert.NoError(t, validateRequest(&RenderRequest{HTML: "<p>x</p>", PaperSize: PaperSizeLetter}))
}

func TestChromedpRenderer_RejectsInvalidRequestWithoutBrowser(t *testing.T) {
	r := NewChromedpRenderer(ChromedpConfig{ExecPath: "/nonexistent/chrome"})
	defer r.Close()

	_, err := r.Render(context.Background(), &RenderRequest{PaperSize: PaperSizeLetter})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}
