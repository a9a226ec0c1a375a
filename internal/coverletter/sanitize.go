package coverletter

import (
	"regexp"
	"strings"
)

// Bullet is the only non-ASCII glyph that survives sanitization.
const Bullet = '•'

var (
	squarePlaceholder = regexp.MustCompile(`\[[^\]\n]*?\]`)
	bracePlaceholder  = regexp.MustCompile(`\{[^}\n]*?\}`)
	fillInstruction   = regexp.MustCompile(`(?i)\([^)\n]*?(?:fill in|e\.g\.)[^)\n]*?\)`)
	excessBlankLines  = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)

	glyphs = strings.NewReplacer(
		"●", "•", "◦", "•", "▪", "•", "▫", "•",
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
		"\r\n", "\n",
	)
)

// Sanitize removes template leftovers from generated text and reduces it to
// characters the standard PDF fonts can encode.
func Sanitize(text string) string {
	text = squarePlaceholder.ReplaceAllString(text, "")
	text = bracePlaceholder.ReplaceAllString(text, "")
	text = fillInstruction.ReplaceAllString(text, "")
	text = glyphs.Replace(text)
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	text = strings.Map(func(r rune) rune {
		if r == Bullet || r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}
