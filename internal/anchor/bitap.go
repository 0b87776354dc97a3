package anchor

import (
	"strings"
	"unicode/utf8"
)

// maxBitapPattern is the register width of the bitmask dynamic program.
// Patterns longer than this degrade to a plain substring search inside the
// candidate windows; that mirrors the original bitmask implementation and is
// documented behavior, not an error.
const maxBitapPattern = 31

// DefaultThreshold is the minimum similarity the fuzzy tier accepts.
const DefaultThreshold = 0.8

// fuzzyMatch is a fuzzy candidate: a position in normalized text and its
// similarity score in (0, 1].
type fuzzyMatch struct {
	pos        TextPosition
	similarity float64
}

// searchFuzzy looks for the closest approximation of pattern inside text
// using the Bitap (Shift-Or) algorithm. To bound cost the scan is restricted
// to candidate windows: when prefix is non-empty and occurs in the text, one
// window opens right after each prefix occurrence and extends about twice the
// pattern length; otherwise the whole text forms a single window. The best
// candidate across all windows wins; earlier candidates win similarity ties.
func searchFuzzy(text, pattern, prefix string, threshold float64) (fuzzyMatch, bool) {
	if pattern == "" || threshold <= 0 || threshold > 1 {
		return fuzzyMatch{}, false
	}

	var best fuzzyMatch
	found := false
	for _, w := range candidateWindows(text, pattern, prefix) {
		m, ok := bitapWindow(text[w.Start:w.End], pattern, threshold)
		if !ok {
			continue
		}
		m.pos.Start += w.Start
		m.pos.End += w.Start
		if !found || m.similarity > best.similarity {
			best = m
			found = true
		}
	}
	return best, found
}

// candidateWindows returns the regions of text worth scanning. Window ends
// are extended to rune boundaries so a window never splits a character.
func candidateWindows(text, pattern, prefix string) []TextPosition {
	whole := []TextPosition{{Start: 0, End: len(text)}}
	if prefix == "" {
		return whole
	}
	hits := FindAllMatches(text, prefix)
	if len(hits) == 0 {
		return whole
	}

	windows := make([]TextPosition, 0, len(hits))
	for _, h := range hits {
		end := h.End + 2*len(pattern)
		if end > len(text) {
			end = len(text)
		}
		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}
		if end > h.End {
			windows = append(windows, TextPosition{Start: h.End, End: end})
		}
	}
	if len(windows) == 0 {
		return whole
	}
	return windows
}

// bitapWindow runs the classic bitmask dynamic program over one window.
// For each text position it finds the smallest error level d whose state has
// the pattern's final bit set and records a candidate ending there with
// similarity 1 - d/m. Positions are returned as byte offsets into window.
func bitapWindow(window, pattern string, threshold float64) (fuzzyMatch, bool) {
	patRunes := []rune(pattern)
	m := len(patRunes)
	if m == 0 {
		return fuzzyMatch{}, false
	}

	if m > maxBitapPattern {
		// Register overflow: degrade to exact substring search.
		idx := strings.Index(window, pattern)
		if idx < 0 {
			return fuzzyMatch{}, false
		}
		return fuzzyMatch{
			pos:        TextPosition{Start: idx, End: idx + len(pattern)},
			similarity: 1.0,
		}, true
	}

	maxErrors := int(float64(m) * (1 - threshold))

	masks := make(map[rune]uint64, m)
	for i, r := range patRunes {
		masks[r] |= 1 << i
	}
	accept := uint64(1) << (m - 1)

	// offs[j] is the byte offset of the j-th rune of window.
	runes := make([]rune, 0, len(window))
	offs := make([]int, 0, len(window))
	for i, r := range window {
		runes = append(runes, r)
		offs = append(offs, i)
	}

	// state[d] holds the match prefixes reachable with at most d errors.
	state := make([]uint64, maxErrors+1)

	var best fuzzyMatch
	found := false
	for j, r := range runes {
		cm := masks[r]
		var prevOld uint64
		for d := 0; d <= maxErrors; d++ {
			old := state[d]
			if d == 0 {
				state[0] = ((old << 1) | 1) & cm
			} else {
				// substitution and insertion consume prevOld, deletion the
				// already-updated level below.
				state[d] = (((old << 1) | 1) & cm) |
					(prevOld << 1) | prevOld | (state[d-1] << 1) | 1
			}
			prevOld = old

			if state[d]&accept == 0 {
				continue
			}
			sim := 1 - float64(d)/float64(m)
			if sim >= threshold && (!found || sim > best.similarity) {
				end := offs[j] + utf8.RuneLen(r)
				start := 0
				if j+1-m >= 0 {
					start = offs[j+1-m]
				}
				best = fuzzyMatch{
					pos:        TextPosition{Start: start, End: end},
					similarity: sim,
				}
				found = true
			}
			break // smallest d at this position only
		}
	}
	return best, found
}
