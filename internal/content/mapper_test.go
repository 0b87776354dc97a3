package content

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/citemark/internal/anchor"
)

func TestMapToSpanSingleLeaf(t *testing.T) {
	doc := buildDoc()
	norm := anchor.Normalize(doc.FlatText()) // "first paragraph Hello world"

	start := strings.Index(norm, "paragraph")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("paragraph")})
	if span == nil {
		t.Fatal("expected a span")
	}
	if got := span.Text(); got != "paragraph" {
		t.Errorf("span text = %q, want %q", got, "paragraph")
	}
	if len(span.parts) != 1 {
		t.Errorf("got %d parts, want 1", len(span.parts))
	}
}

func TestMapToSpanCrossesLeafBoundary(t *testing.T) {
	doc := buildDoc()
	norm := anchor.Normalize(doc.FlatText())

	start := strings.Index(norm, "Hello")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("Hello")})
	if span == nil {
		t.Fatal("expected a span")
	}
	if got := span.Text(); got != "Hello" {
		t.Errorf("span text = %q, want %q", got, "Hello")
	}
	if len(span.parts) != 2 {
		t.Errorf("got %d parts, want 2 (split across Hel and lo world leaves)", len(span.parts))
	}
}

func TestMapToSpanCrossesBlockBoundary(t *testing.T) {
	doc := buildDoc()
	norm := anchor.Normalize(doc.FlatText())

	start := strings.Index(norm, "paragraph Hello")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("paragraph Hello")})
	if span == nil {
		t.Fatal("expected a span")
	}
	// The block separator is synthetic and belongs to no leaf, so the span
	// covers only the leaf material on both sides of it.
	if got := span.Text(); got != "paragraphHello" {
		t.Errorf("span text = %q, want %q", got, "paragraphHello")
	}
	if len(span.parts) != 3 {
		t.Errorf("got %d parts, want 3", len(span.parts))
	}
}

func TestMapToSpanCollapsedWhitespace(t *testing.T) {
	root := &Node{Kind: KindDocument}
	p := &Node{Kind: KindParagraph}
	p.AppendChild(newText("spaced   out\n\ttext here"))
	root.AppendChild(p)
	doc := &Document{Root: root}

	norm := anchor.Normalize(doc.FlatText()) // "spaced out text here"
	start := strings.Index(norm, "out text")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("out text")})
	if span == nil {
		t.Fatal("expected a span")
	}
	if got := span.Text(); got != "out\n\ttext" {
		t.Errorf("span text = %q, want %q", got, "out\n\ttext")
	}
}

func TestMapToSpanInvalidPositions(t *testing.T) {
	doc := buildDoc()
	normLen := len(anchor.Normalize(doc.FlatText()))

	tests := []struct {
		name string
		pos  anchor.TextPosition
	}{
		{"negative start", anchor.TextPosition{Start: -1, End: 3}},
		{"empty range", anchor.TextPosition{Start: 3, End: 3}},
		{"inverted range", anchor.TextPosition{Start: 5, End: 2}},
		{"end past text", anchor.TextPosition{Start: 0, End: normLen + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if span := MapToSpan(doc, tt.pos); span != nil {
				t.Errorf("MapToSpan(%v) = %v, want nil", tt.pos, span)
			}
		})
	}

	t.Run("nil document", func(t *testing.T) {
		if span := MapToSpan(nil, anchor.TextPosition{Start: 0, End: 1}); span != nil {
			t.Error("want nil for nil document")
		}
	})
}
