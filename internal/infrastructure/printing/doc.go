// Package printing renders quote documents to PDF.
//
// HTML comes from an embedded html/template (TemplateEngine) and is printed
// by headless Chrome over the DevTools protocol (ChromedpRenderer).
// QuotePDFRenderer ties both together for the quote application service.
package printing
