// Package anchor relocates a quoted passage inside a reformatted rendering of
// the document it was taken from. Matching runs over normalized text through
// four strictly ordered tiers: exact match (with context disambiguation),
// a shortened-pattern retry, bounded approximate matching (Bitap), and
// not-found. The first tier that both matches and resolves structurally wins;
// there is no backtracking.
package anchor

import "unicode/utf8"

// shortSnippetLen is the normalized-rune count of the shortened pattern used
// by the second tier, and the minimum length beyond which that tier runs.
const shortSnippetLen = 50

const shortSnippetConfidence = 0.8

// MapFunc resolves a normalized-text position against the caller's content
// tree, typically capturing the resolved span in a closure. Returning false
// marks the position structurally unresolvable and fails the current tier.
type MapFunc func(TextPosition) bool

// Anchor runs the tiered strategy over the raw flattened text of a document.
// Both text and selector are normalized internally. mapPos may be nil when no
// structural resolution is needed (pure text search). "Not found" is a normal
// return value, never an error.
func Anchor(text string, sel Selector, mapPos MapFunc) Result {
	exact := Normalize(sel.Exact)
	if exact == "" {
		return Result{}
	}

	normText := Normalize(text)
	prefix := Normalize(sel.Prefix)
	suffix := Normalize(sel.Suffix)

	resolve := mapPos
	if resolve == nil {
		resolve = func(TextPosition) bool { return true }
	}

	// Tier 1: exact.
	matches := FindAllMatches(normText, exact)
	if len(matches) > 0 {
		m := matches[0]
		if len(matches) > 1 && (prefix != "" || suffix != "") {
			m = disambiguate(normText, matches, prefix, suffix)
		}
		if resolve(m) {
			debugf("exact: %d match(es), chose %d..%d", len(matches), m.Start, m.End)
			return Result{
				Found:      true,
				Position:   m,
				MatchCount: len(matches),
				Fallback:   FallbackNone,
				Confidence: 1.0,
			}
		}
		debugf("exact: match %d..%d failed structural mapping", m.Start, m.End)
	}

	// Tier 2: shortened pattern, first match only.
	if utf8.RuneCountInString(exact) > shortSnippetLen {
		snippet := firstRunes(exact, shortSnippetLen)
		matches := FindAllMatches(normText, snippet)
		if len(matches) > 0 {
			m := matches[0]
			if resolve(m) {
				debugf("short_snippet: %d match(es), chose %d..%d", len(matches), m.Start, m.End)
				return Result{
					Found:      true,
					Position:   m,
					MatchCount: len(matches),
					Fallback:   FallbackShortSnippet,
					Confidence: shortSnippetConfidence,
				}
			}
			debugf("short_snippet: match %d..%d failed structural mapping", m.Start, m.End)
		}
	}

	// Tier 3: fuzzy.
	if fm, ok := searchFuzzy(normText, exact, prefix, DefaultThreshold); ok {
		if resolve(fm.pos) {
			debugf("fuzzy: match %d..%d similarity %.3f", fm.pos.Start, fm.pos.End, fm.similarity)
			return Result{
				Found:      true,
				Position:   fm.pos,
				MatchCount: 1,
				Fallback:   FallbackFuzzy,
				Confidence: fm.similarity,
			}
		}
		debugf("fuzzy: match %d..%d failed structural mapping", fm.pos.Start, fm.pos.End)
	}

	debugf("not found: exact=%q", exact)
	return Result{}
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
