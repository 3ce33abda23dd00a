package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine parses and executes html/templates with the formatting
// helpers quote documents need
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) { maps.Copy(e.funcMap, funcs) }
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"money":      formatMoney,
		"signed":     formatSignedMoney,
		"hours":      formatHours,
		"longDate":   formatLongDate,
		"dateTime":   formatDateTime,
		"title":      titleCase,
		"moveSize":   moveSizeLabel,
		"upper":      strings.ToUpper,
		"join":       strings.Join,
		"isNegative": func(d decimal.Decimal) bool { return d.IsNegative() },
		"isZero":     func(d decimal.Decimal) bool { return d.IsZero() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse parses a named template from content
func (e *TemplateEngine) Parse(name, content string) (*template.Template, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewRenderError(ErrCodeTemplateFailed, "template content is empty", nil)
	}
	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse template "+name, err)
	}
	return tmpl, nil
}

// ParseFS parses a template file from an embedded filesystem
func (e *TemplateEngine) ParseFS(fsys fs.FS, path string) (*template.Template, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to read template "+path, err)
	}
	return e.Parse(path, string(content))
}

// Execute runs a parsed template
func (e *TemplateEngine) Execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute template "+tmpl.Name(), err)
	}
	return buf.String(), nil
}

// RenderString parses and executes content in one step
func (e *TemplateEngine) RenderString(name, content string, data any) (string, error) {
	tmpl, err := e.Parse(name, content)
	if err != nil {
		return "", err
	}
	return e.Execute(tmpl, data)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
}

// formatMoney formats an amount with its currency symbol.
// Example: (1234.5, "USD") -> "$1,234.50"
func formatMoney(d decimal.Decimal, currency string) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + currencyPrefix(currency) + groupThousands(d.StringFixed(2))
}

// formatSignedMoney always shows the sign, for adjustments.
// Example: (150, "USD") -> "+$150.00"
func formatSignedMoney(d decimal.Decimal, currency string) string {
	if d.IsNegative() {
		return formatMoney(d, currency)
	}
	return "+" + formatMoney(d, currency)
}

func currencyPrefix(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if sym, ok := currencySymbols[currency]; ok {
		return sym
	}
	if currency == "" {
		return "$"
	}
	return currency + " "
}

// groupThousands inserts commas into the integer part of a fixed-point string
func groupThousands(fixed string) string {
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// formatHours prints hours without trailing zeros: 4.50 -> "4.5"
func formatHours(d decimal.Decimal) string {
	return d.String()
}

// formatLongDate accepts a time or a YYYY-MM-DD string.
// Example: "2026-05-09" -> "Saturday, May 9, 2026"
func formatLongDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("Monday, January 2, 2006")
}

func formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 3:04 PM MST")
}

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func moveSizeLabel(size string) string {
	switch size {
	case "studio":
		return "Studio"
	case "1br":
		return "1 Bedroom"
	case "2br", "3br", "4br":
		return size[:1] + " Bedrooms"
	case "office":
		return "Office"
	}
	return titleCase(size)
}

func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		for _, layout := range []string{time.DateOnly, time.RFC3339} {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
	case fmt.Stringer:
		return toTime(val.String())
	}
	return time.Time{}
}
