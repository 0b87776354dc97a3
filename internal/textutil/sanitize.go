// Package textutil prepares document text for terminal display.
package textutil

import "strings"

// formattingRuneLabels makes invisible bidi/zero-width characters visible
// instead of letting them reorder or hide displayed citation text.
var formattingRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeLine replaces control characters so document-controlled text cannot
// inject terminal escape sequences when drawn. Tabs are expected to be
// expanded before this point and turn into a space if they survive.
func SanitizeLine(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

// SanitizeKeepLayout is SanitizeLine for multi-line text: newlines and
// tabs pass through so the caller can lay them out, everything else is
// neutralized the same way.
func SanitizeKeepLayout(text string) string {
	for _, r := range text {
		if r != '\n' && r != '\t' && requiresSanitization(r) {
			return sanitizeKeepLayout(text)
		}
	}
	return text
}

func sanitizeKeepLayout(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func requiresSanitization(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return true
	}
	if isFormattingRune(r) {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
