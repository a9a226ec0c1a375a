package coverletter

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// fontMeasurer measures with the core font metrics of an fpdf document.
type fontMeasurer struct {
	doc       *fpdf.Fpdf
	translate func(string) string
}

func (m fontMeasurer) Width(s string) float64 {
	return m.doc.GetStringWidth(m.translate(s))
}

func newDocument() (*fpdf.Fpdf, fontMeasurer) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Cover Letter", true)
	doc.SetFont(fontFamily, "", FontSize)
	// cp1252 so the bullet maps to a core-font glyph
	return doc, fontMeasurer{doc: doc, translate: doc.UnicodeTranslatorFromDescriptor("")}
}

// NewMeasurer returns a Measurer backed by the renderer's font metrics.
func NewMeasurer() Measurer {
	_, m := newDocument()
	return m
}

// Render lays out already-sanitized text and returns the PDF bytes and the
// number of pages.
func Render(text string) ([]byte, int, error) {
	doc, m := newDocument()
	pages := Layout(text, m)
	for _, page := range pages {
		doc.AddPage()
		for _, line := range page.Lines {
			if line.Text == "" {
				continue
			}
			// fpdf measures y from the top edge.
			doc.Text(line.X, PageHeight-line.Y, m.translate(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("render cover letter pdf: %w", err)
	}
	return buf.Bytes(), len(pages), nil
}
