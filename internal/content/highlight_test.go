package content

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/citemark/internal/anchor"
)

func markedText(doc *Document) string {
	var b strings.Builder
	for _, leaf := range doc.Leaves() {
		if leaf.Mark {
			b.WriteString(leaf.Text)
		}
	}
	return b.String()
}

func TestApplyHighlightRoundTrip(t *testing.T) {
	doc := buildDoc()
	before := doc.FlatText()
	norm := anchor.Normalize(before)

	start := strings.Index(norm, "Hello")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("Hello")})
	if span == nil {
		t.Fatal("expected a span")
	}

	cleanup := ApplyHighlight(span)
	if cleanup == nil {
		t.Fatal("expected a cleanup action")
	}

	// Applying the highlight must not change the flattened text.
	if got := doc.FlatText(); got != before {
		t.Errorf("flat text after apply = %q, want %q", got, before)
	}
	if got := markedText(doc); got != "Hello" {
		t.Errorf("marked text = %q, want %q", got, "Hello")
	}

	cleanup()
	if got := doc.FlatText(); got != before {
		t.Errorf("flat text after cleanup = %q, want %q", got, before)
	}
	if got := markedText(doc); got != "" {
		t.Errorf("marked text after cleanup = %q, want none", got)
	}
}

func TestApplyHighlightMidLeafSplit(t *testing.T) {
	root := &Node{Kind: KindDocument}
	p := &Node{Kind: KindParagraph}
	p.AppendChild(newText("alpha beta gamma"))
	root.AppendChild(p)
	doc := &Document{Root: root}

	span := MapToSpan(doc, anchor.TextPosition{Start: 6, End: 10}) // "beta"
	if span == nil {
		t.Fatal("expected a span")
	}
	cleanup := ApplyHighlight(span)

	leaves := doc.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves after split, want 3", len(leaves))
	}
	wantTexts := []string{"alpha ", "beta", " gamma"}
	wantMarks := []bool{false, true, false}
	for i, leaf := range leaves {
		if leaf.Text != wantTexts[i] || leaf.Mark != wantMarks[i] {
			t.Errorf("leaf %d = {%q mark=%v}, want {%q mark=%v}",
				i, leaf.Text, leaf.Mark, wantTexts[i], wantMarks[i])
		}
	}

	cleanup()
	leaves = doc.Leaves()
	if len(leaves) != 1 || leaves[0].Text != "alpha beta gamma" {
		t.Errorf("cleanup did not restore original leaf: %v", leaves)
	}
}

func TestApplyHighlightAcrossBlocks(t *testing.T) {
	doc := buildDoc()
	before := doc.FlatText()
	norm := anchor.Normalize(before)

	start := strings.Index(norm, "paragraph Hello")
	span := MapToSpan(doc, anchor.TextPosition{Start: start, End: start + len("paragraph Hello")})
	if span == nil {
		t.Fatal("expected a span")
	}
	cleanup := ApplyHighlight(span)

	if doc.FlatText() != before {
		t.Error("flat text changed by apply")
	}
	if got := markedText(doc); got != "paragraphHello" {
		t.Errorf("marked text = %q, want %q", got, "paragraphHello")
	}

	cleanup()
	if doc.FlatText() != before {
		t.Error("flat text changed by cleanup")
	}
	if markedText(doc) != "" {
		t.Error("marks survived cleanup")
	}
}

func TestApplyHighlightNilSpan(t *testing.T) {
	if ApplyHighlight(nil) != nil {
		t.Error("nil span must yield nil cleanup")
	}
}
