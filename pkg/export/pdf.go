package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// utf8FontFamily is the registration name for a caller-supplied font.
const utf8FontFamily = "schedule"

// PDFExporter renders datasets into a basic tabular PDF.
//
// The built-in core fonts only cover cp1252, so schedule summaries written
// in Japanese need a TrueType font supplied through fontData. Without one
// the exporter falls back to Arial behind a cp1252 translator, which
// degrades anything outside Latin-1 to substitution characters.
type PDFExporter struct {
	fontData []byte
}

// NewPDFExporter constructs a PDF exporter. fontData holds a TrueType font
// to embed, or nil for the core-font fallback.
func NewPDFExporter(fontData []byte) *PDFExporter {
	return &PDFExporter{fontData: fontData}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	family := "Arial"
	cell := pdf.UnicodeTranslatorFromDescriptor("")
	if len(e.fontData) > 0 {
		pdf.AddUTF8FontFromBytes(utf8FontFamily, "", e.fontData)
		pdf.AddUTF8FontFromBytes(utf8FontFamily, "B", e.fontData)
		family = utf8FontFamily
		cell = func(s string) string { return s }
	}

	if title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, cell(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(family, "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, cell(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, cell(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
