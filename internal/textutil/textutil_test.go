package textutil

import "testing"

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean passthrough", "plain text", "plain text"},
		{"escape byte", "a\x1bb", "a?b"},
		{"newline to space", "a\nb", "a b"},
		{"tab to space", "a\tb", "a b"},
		{"delete byte", "a\x7fb", "a?b"},
		{"rlo made visible", "a‮b", "a⟪RLO⟫b"},
		{"zwsp made visible", "a​b", "a⟪ZWSP⟫b"},
		{"wide runes kept", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeLine(tt.in); got != tt.want {
				t.Errorf("SanitizeLine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no tabs", "no tabs"},
		{"\tx", "    x"},
		{"ab\tx", "ab  x"},
		{"abcd\tx", "abcd    x"},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.in, DefaultTabWidth); got != tt.want {
			t.Errorf("ExpandTabs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本", 4},
		{"aé", 2},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		in       string
		maxWidth int
		want     string
	}{
		{"short", 10, "short"},
		{"exactly ten chars!", 10, "exactly t…"},
		{"anything", 0, ""},
		{"wide 日本語 text", 8, "wide 日…"},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.in, tt.maxWidth); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.in, tt.maxWidth, got, tt.want)
		}
	}
}
