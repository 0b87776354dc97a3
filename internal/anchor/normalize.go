package anchor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// zeroWidthRunes are stripped outright during normalization. Soft hyphens
// show up in justified EPUB text; the zero-width family leaks out of web
// copy-paste and PDF extraction.
var zeroWidthRunes = map[rune]struct{}{
	0x00AD: {}, // soft hyphen
	0x200B: {}, // zero-width space
	0x200C: {}, // zero-width non-joiner
	0x200D: {}, // zero-width joiner
	0xFEFF: {}, // zero-width no-break space / BOM
}

// foldRune maps typographic punctuation onto its plain ASCII form.
// Case is never folded: citations are expected to match verbatim casing.
func foldRune(r rune) rune {
	switch r {
	case '‘', '’': // curly single quotes
		return '\''
	case '“', '”': // curly double quotes
		return '"'
	case '–', '—': // en dash, em dash
		return '-'
	}
	return r
}

func isZeroWidth(r rune) bool {
	_, ok := zeroWidthRunes[r]
	return ok
}

// Normalize canonicalizes text for comparison: runs of whitespace (including
// newlines and tabs) collapse to a single space, soft hyphens and zero-width
// characters are stripped, curly quotes fold to straight quotes, en/em dashes
// fold to a plain hyphen, and leading/trailing whitespace is trimmed.
// Normalize is idempotent and preserves case.
func Normalize(s string) string {
	if !needsNormalization(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if isZeroWidth(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if b.Len() > 0 {
				pendingSpace = true
			}
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

// NormalizeWithMap normalizes s and additionally returns, for every byte of
// the normalized output, the offset of the raw byte it was derived from. A
// collapsed whitespace run maps to its first raw byte. The map lets a caller
// translate normalized offsets back into raw offsets; use len(s) for the
// exclusive end position.
func NormalizeWithMap(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	indexMap := make([]int, 0, len(s))

	pendingSpace := false
	pendingAt := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case isZeroWidth(r):
		case unicode.IsSpace(r):
			if b.Len() > 0 && !pendingSpace {
				pendingSpace = true
				pendingAt = i
			}
		default:
			if pendingSpace {
				b.WriteByte(' ')
				indexMap = append(indexMap, pendingAt)
				pendingSpace = false
			}
			folded := foldRune(r)
			n := b.Len()
			b.WriteRune(folded)
			for ; n < b.Len(); n++ {
				indexMap = append(indexMap, i)
			}
		}
		i += size
	}
	return b.String(), indexMap
}

// needsNormalization reports whether Normalize would change s, so clean text
// avoids a rebuild.
func needsNormalization(s string) bool {
	prevSpace := false
	for i, r := range s {
		if isZeroWidth(r) || foldRune(r) != r {
			return true
		}
		if unicode.IsSpace(r) {
			if r != ' ' || prevSpace || i == 0 {
				return true
			}
			prevSpace = true
			continue
		}
		prevSpace = false
	}
	return prevSpace // trailing space
}
