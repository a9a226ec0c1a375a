package coverletter

import (
	"regexp"
	"strings"
)

// Page geometry in PDF points (US Letter).
const (
	PageWidth   = 612.0
	PageHeight  = 792.0
	Margin      = 72.0
	FontSize    = 11.0
	LineHeight  = FontSize + 4
	UsableWidth = PageWidth - 2*Margin
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	Width(s string) float64
}

// Line is a single run of text. Y is measured from the bottom of the page.
type Line struct {
	Text string
	X    float64
	Y    float64
}

// Page holds the lines placed on one page.
type Page struct {
	Lines []Line
}

// Layout wraps text into lines no wider than UsableWidth and distributes
// them over as many pages as needed. It always returns at least one page.
func Layout(text string, m Measurer) []Page {
	var lines []string
	for i, para := range paragraphs(text) {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrap(para, m)...)
	}

	pages := []Page{{}}
	y := PageHeight - Margin
	for _, text := range lines {
		if y < Margin+LineHeight {
			pages = append(pages, Page{})
			y = PageHeight - Margin
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, Line{Text: text, X: Margin, Y: y})
		y -= LineHeight
	}
	return pages
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// wrap keeps each source line of the paragraph on its own run of lines and
// packs words greedily within it.
func wrap(paragraph string, m Measurer) []string {
	var lines []string
	for _, src := range strings.Split(paragraph, "\n") {
		lines = append(lines, wrapLine(src, m)...)
	}
	return lines
}

// wrapLine packs words greedily. Words wider than a full line are split.
func wrapLine(src string, m Measurer) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(src) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Width(candidate) <= UsableWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if m.Width(word) <= UsableWidth {
			current = word
			continue
		}
		chunks := breakWord(word, m)
		lines = append(lines, chunks[:len(chunks)-1]...)
		current = chunks[len(chunks)-1]
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func breakWord(word string, m Measurer) []string {
	var chunks []string
	var b strings.Builder
	for _, r := range word {
		if b.Len() > 0 && m.Width(b.String()+string(r)) > UsableWidth {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	return append(chunks, b.String())
}
