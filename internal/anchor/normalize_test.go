package anchor

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"collapse spaces", "a   b", "a b"},
		{"collapse mixed whitespace", "a   b\n\tc", "a b c"},
		{"trim", "  hello  ", "hello"},
		{"only whitespace", " \n\t ", ""},
		{"empty", "", ""},
		{"soft hyphen", "hy­phen", "hyphen"},
		{"zero-width space", "zero​width", "zerowidth"},
		{"zero-width joiners", "a‌‍b", "ab"},
		{"bom", "\uFEFFstart", "start"},
		{"curly single quotes", "‘quoted’", "'quoted'"},
		{"curly double quotes", "“quoted”", `"quoted"`},
		{"en dash", "1–2", "1-2"},
		{"em dash", "one—two", "one-two"},
		{"case preserved", "The QUICK Brown", "The QUICK Brown"},
		{"interior newlines", "line one\n\nline two", "line one line two"},
		{"unicode kept", "żółć über naïve", "żółć über naïve"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  lots \t of \n whitespace  ",
		"‘mixed’ — punctuation­",
		"already normal",
		"multi​‌‍zero width",
		"tabs\there\tand\tthere",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}

func TestNormalizeWithMapParity(t *testing.T) {
	inputs := []string{
		"",
		"hello world",
		"  a   b\n\tc  ",
		"‘curly’ — dash­ and ​zero",
		"mixed “stuff”\nhere",
		"żółć  über",
	}
	for _, s := range inputs {
		want := Normalize(s)
		got, idx := NormalizeWithMap(s)
		if got != want {
			t.Errorf("NormalizeWithMap(%q) text = %q, want %q", s, got, want)
		}
		if len(idx) != len(got) {
			t.Errorf("NormalizeWithMap(%q) map len = %d, want %d", s, len(idx), len(got))
		}
	}
}

func TestNormalizeWithMapOffsets(t *testing.T) {
	// "a   b" normalizes to "a b"; the collapsed space maps to the first
	// whitespace byte of the run.
	norm, idx := NormalizeWithMap("a   b")
	if norm != "a b" {
		t.Fatalf("norm = %q, want %q", norm, "a b")
	}
	want := []int{0, 1, 4}
	for i, w := range want {
		if idx[i] != w {
			t.Errorf("idx[%d] = %d, want %d", i, idx[i], w)
		}
	}

	// Leading whitespace shifts every mapped offset.
	norm, idx = NormalizeWithMap("  xy")
	if norm != "xy" {
		t.Fatalf("norm = %q, want %q", norm, "xy")
	}
	if idx[0] != 2 || idx[1] != 3 {
		t.Errorf("idx = %v, want [2 3]", idx)
	}

	// A folded curly quote is three raw bytes but one normalized byte.
	norm, idx = NormalizeWithMap("‘a")
	if norm != "'a" {
		t.Fatalf("norm = %q, want %q", norm, "'a")
	}
	if idx[0] != 0 || idx[1] != 3 {
		t.Errorf("idx = %v, want [0 3]", idx)
	}
}
