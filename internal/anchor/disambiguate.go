package anchor

import (
	"strings"
	"unicode/utf8"
)

// contextSlack widens the disambiguation windows beyond the context length so
// a prefix or suffix still lands inside the window when normalization shifted
// a few characters around the match.
const contextSlack = 10

// disambiguate picks the best of several exact matches using normalized
// prefix/suffix context. Each match earns one point when the prefix occurs in
// a bounded window immediately before it and one when the suffix occurs in a
// bounded window immediately after it. Windows are sized in characters, not
// bytes, so multibyte text gets the same reach. Ties, including the all-zero
// case, resolve to the first match in document order.
func disambiguate(text string, matches []TextPosition, prefix, suffix string) TextPosition {
	best := matches[0]
	bestScore := -1
	for _, m := range matches {
		score := 0
		if prefix != "" {
			wStart := runesBack(text, m.Start, utf8.RuneCountInString(prefix)+contextSlack)
			if strings.Contains(text[wStart:m.Start], prefix) {
				score++
			}
		}
		if suffix != "" {
			wEnd := runesForward(text, m.End, utf8.RuneCountInString(suffix)+contextSlack)
			if strings.Contains(text[m.End:wEnd], suffix) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}

// runesBack returns the byte offset n runes before pos, clamped to 0.
func runesBack(text string, pos, n int) int {
	for ; n > 0 && pos > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(text[:pos])
		pos -= size
	}
	return pos
}

// runesForward returns the byte offset n runes after pos, clamped to
// len(text).
func runesForward(text string, pos, n int) int {
	for ; n > 0 && pos < len(text); n-- {
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return pos
}
