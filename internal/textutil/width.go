package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tab characters with spaces respecting terminal column
// width, so code blocks line up the way their author saw them.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + tabWidth)
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			for i := 0; i < spaces; i++ {
				b.WriteByte(' ')
			}
			column += spaces
			continue
		}
		b.WriteRune(ru)
		w := runewidth.RuneWidth(ru)
		if w < 1 {
			w = 1
		}
		column += w
	}
	return b.String()
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// TruncateToWidth clips text to at most maxWidth columns, appending an
// ellipsis when something was cut.
func TruncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	const ellipsis = "…"
	if maxWidth <= 1 {
		return ellipsis
	}
	available := maxWidth - 1
	var b strings.Builder
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		if width+w > available {
			break
		}
		b.WriteRune(ru)
		width += w
	}
	b.WriteString(ellipsis)
	return b.String()
}
