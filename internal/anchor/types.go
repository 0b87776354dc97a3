package anchor

import "encoding/json"

// Selector is a text quote selector: the exact passage to relocate plus
// optional surrounding context. Prefix and Suffix are used only to pick
// between multiple occurrences and to seed fuzzy candidate windows; a match
// never requires them.
type Selector struct {
	Exact  string `json:"exact"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// TextPosition is a half-open byte range into the normalized text of a
// document. 0 <= Start < End <= len(normalized text) for a valid position.
type TextPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Fallback identifies which matching tier produced a result.
type Fallback int

const (
	FallbackNone Fallback = iota
	FallbackShortSnippet
	FallbackFuzzy
)

func (f Fallback) String() string {
	switch f {
	case FallbackShortSnippet:
		return "short_snippet"
	case FallbackFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// MarshalJSON encodes the fallback tier as its string name.
func (f Fallback) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// Result reports the outcome of an anchoring attempt. Confidence is 1.0 for
// exact matches, 0.8 for the short-snippet fallback, and the fuzzy similarity
// score otherwise; zero when nothing was found.
type Result struct {
	Found      bool         `json:"found"`
	Position   TextPosition `json:"position"`
	MatchCount int          `json:"matchCount"`
	Fallback   Fallback     `json:"fallbackUsed"`
	Confidence float64      `json:"confidence"`
}
