package anchor

import "strings"

// FindAllMatches returns every occurrence of pattern in text, in ascending
// start order. The scan cursor advances exactly one byte past each found
// index, so overlapping occurrences are all reported ("aa" in "aaa" yields
// two matches). An empty or absent pattern yields no matches.
func FindAllMatches(text, pattern string) []TextPosition {
	if pattern == "" {
		return nil
	}

	var matches []TextPosition
	from := 0
	for from+len(pattern) <= len(text) {
		idx := strings.Index(text[from:], pattern)
		if idx < 0 {
			break
		}
		start := from + idx
		matches = append(matches, TextPosition{Start: start, End: start + len(pattern)})
		from = start + 1
	}
	return matches
}
