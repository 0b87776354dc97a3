package content

import (
	"sort"

	"github.com/kk-code-lab/citemark/internal/anchor"
)

// spanPart is a contiguous highlighted range inside one leaf, in raw byte
// offsets local to that leaf's text.
type spanPart struct {
	leaf  *Node
	start int
	end   int
}

// Span is a resolved reference to a concrete range of the content tree.
// It stays valid until the tree is structurally mutated.
type Span struct {
	doc   *Document
	parts []spanPart
}

// Text returns the raw text covered by the span, leaf parts concatenated.
func (s *Span) Text() string {
	var out []byte
	for _, p := range s.parts {
		out = append(out, p.leaf.Text[p.start:p.end]...)
	}
	return string(out)
}

// MapToSpan resolves a half-open position in the document's normalized text
// to a span over its text leaves. The leaf arena and the normalized-to-raw
// index table are built once per call from the live tree. Returns nil when
// the position cannot be located structurally (out of bounds, or covering
// only synthetic block separators); callers treat that as a failed tier, not
// an error.
func MapToSpan(doc *Document, pos anchor.TextPosition) *Span {
	if doc == nil || doc.Root == nil || pos.Start < 0 || pos.Start >= pos.End {
		return nil
	}

	flat, arena := doc.flatten()
	norm, indexMap := anchor.NormalizeWithMap(flat)
	if pos.End > len(norm) {
		return nil
	}

	rawStart := normToRaw(indexMap, pos.Start, len(norm), len(flat))
	rawEnd := normToRaw(indexMap, pos.End, len(norm), len(flat))
	if rawStart < 0 || rawEnd < 0 || rawStart >= rawEnd {
		return nil
	}

	span := &Span{doc: doc}
	// Leaves are sorted by flat offset; find the first one that can overlap.
	i := sort.Search(len(arena), func(i int) bool { return arena[i].end > rawStart })
	for ; i < len(arena) && arena[i].start < rawEnd; i++ {
		lr := arena[i]
		s := max(rawStart, lr.start) - lr.start
		e := min(rawEnd, lr.end) - lr.start
		if s >= e {
			continue
		}
		span.parts = append(span.parts, spanPart{leaf: lr.node, start: s, end: e})
	}
	if len(span.parts) == 0 {
		return nil
	}
	return span
}

// normToRaw translates a normalized byte offset to a flat-text byte offset.
// The exclusive end offset maps to the raw length.
func normToRaw(indexMap []int, normIdx, normLen, rawLen int) int {
	if normIdx == normLen {
		return rawLen
	}
	if normIdx < 0 || normIdx >= len(indexMap) {
		return -1
	}
	return indexMap[normIdx]
}
