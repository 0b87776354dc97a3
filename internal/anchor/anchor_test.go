package anchor

import (
	"strings"
	"testing"
)

func TestAnchorExact(t *testing.T) {
	text := "Some introduction.\n\nhello   world appears here."
	res := Anchor(text, Selector{Exact: "hello world"}, nil)
	if !res.Found {
		t.Fatal("expected found")
	}
	if res.Fallback != FallbackNone {
		t.Errorf("fallback = %v, want none", res.Fallback)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", res.Confidence)
	}
	if res.MatchCount != 1 {
		t.Errorf("matchCount = %d, want 1", res.MatchCount)
	}
	norm := Normalize(text)
	if got := norm[res.Position.Start:res.Position.End]; got != "hello world" {
		t.Errorf("position covers %q, want %q", got, "hello world")
	}
}

func TestAnchorDisambiguation(t *testing.T) {
	text := "the cat sat. the cat ran."
	res := Anchor(text, Selector{Exact: "the cat", Prefix: "sat. "}, nil)
	if !res.Found {
		t.Fatal("expected found")
	}
	if res.MatchCount != 2 {
		t.Errorf("matchCount = %d, want 2", res.MatchCount)
	}
	if res.Position.Start != 13 {
		t.Errorf("anchored at %d, want second occurrence at 13", res.Position.Start)
	}
	if res.Confidence != 1.0 || res.Fallback != FallbackNone {
		t.Errorf("disambiguated match must stay exact tier, got conf %f fallback %v",
			res.Confidence, res.Fallback)
	}
}

func TestAnchorShortSnippetFallback(t *testing.T) {
	fifty := strings.Repeat("abcde fghij ", 4) + "kl" // exactly 50 runes
	if n := len(fifty); n != 50 {
		t.Fatalf("setup: snippet is %d bytes, want 50", n)
	}
	text := "leading content " + fifty + " and trailing content"
	exact := fifty + "MISSING TAIL" // 62 runes, not present verbatim

	res := Anchor(text, Selector{Exact: exact}, nil)
	if !res.Found {
		t.Fatal("expected short-snippet fallback to find the passage")
	}
	if res.Fallback != FallbackShortSnippet {
		t.Errorf("fallback = %v, want short_snippet", res.Fallback)
	}
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", res.Confidence)
	}
	norm := Normalize(text)
	if got := norm[res.Position.Start:res.Position.End]; got != fifty {
		t.Errorf("position covers %q, want the 50-rune snippet", got)
	}
}

func TestAnchorFuzzyFallback(t *testing.T) {
	text := "It was the best of timez, it was the age of wisdom."
	exact := "the best of times" // 17 runes, one substitution away

	res := Anchor(text, Selector{Exact: exact}, nil)
	if !res.Found {
		t.Fatal("expected fuzzy fallback to find the passage")
	}
	if res.Fallback != FallbackFuzzy {
		t.Errorf("fallback = %v, want fuzzy", res.Fallback)
	}
	if res.Confidence < 0.8 || res.Confidence >= 1.0 {
		t.Errorf("confidence = %f, want within [0.8, 1.0)", res.Confidence)
	}
	if res.MatchCount != 1 {
		t.Errorf("matchCount = %d, want 1", res.MatchCount)
	}
}

func TestAnchorNotFound(t *testing.T) {
	res := Anchor("the quick brown fox jumps over the lazy dog", Selector{Exact: "zzzz qqqq xxxx"}, nil)
	if res.Found {
		t.Fatal("expected not found")
	}
	if res.MatchCount != 0 || res.Confidence != 0 {
		t.Errorf("not-found result must be zero: %+v", res)
	}
}

func TestAnchorEmptyExact(t *testing.T) {
	for _, exact := range []string{"", "   ", "\n\t"} {
		res := Anchor("some document text", Selector{Exact: exact}, nil)
		if res.Found || res.MatchCount != 0 || res.Confidence != 0 {
			t.Errorf("Anchor with exact %q = %+v, want fail-fast zero result", exact, res)
		}
	}
}

func TestAnchorCaseSensitive(t *testing.T) {
	// Normalization never folds case, so the lowercase selector cannot match
	// the exact tier. The fuzzy tier may still locate the passage, but only
	// as an approximation: the case differences count as edit errors and the
	// confidence stays below 1.0.
	text := "The Quick Brown Fox."
	res := Anchor(text, Selector{Exact: "quick brown"}, nil)
	if res.Found && (res.Fallback == FallbackNone || res.Confidence == 1.0) {
		t.Errorf("lowercase selector matched as exact: %+v", res)
	}
}

func TestAnchorMappingFailureFallsThrough(t *testing.T) {
	fifty := strings.Repeat("abcdefghi ", 5) // 50 runes
	text := "before " + fifty + "after"
	exact := fifty + "NOT PRESENT" // forces tier 2 on the 50-rune snippet

	// The exact tier never matches; tier 2 matches but the mapper rejects it,
	// so the call degrades to the fuzzy tier or not-found.
	calls := 0
	res := Anchor(text, Selector{Exact: exact}, func(TextPosition) bool {
		calls++
		return false
	})
	if calls == 0 {
		t.Fatal("mapper was never consulted")
	}
	if res.Found {
		t.Errorf("all tiers rejected by mapper, want not found, got %+v", res)
	}
}

func TestAnchorMapperReceivesPosition(t *testing.T) {
	text := "alpha beta gamma"
	var got TextPosition
	res := Anchor(text, Selector{Exact: "beta"}, func(p TextPosition) bool {
		got = p
		return true
	})
	if !res.Found {
		t.Fatal("expected found")
	}
	if got != res.Position {
		t.Errorf("mapper saw %v, result has %v", got, res.Position)
	}
	if Normalize(text)[got.Start:got.End] != "beta" {
		t.Errorf("mapper position covers %q, want beta", Normalize(text)[got.Start:got.End])
	}
}

func TestAnchorNormalizedSelectorMatchesFormattedText(t *testing.T) {
	// Curly quotes, em dash, and a soft hyphen in the document; plain ASCII
	// in the selector. Normalization reconciles both sides.
	text := "He said “well — per­haps” and left."
	res := Anchor(text, Selector{Exact: `"well - perhaps"`}, nil)
	if !res.Found || res.Fallback != FallbackNone {
		t.Fatalf("expected exact match after normalization, got %+v", res)
	}
}
