package content

import "slices"

// CleanupFunc reverts a highlight. Invoke at most once; the viewer guards the
// applied→cleaned transition.
type CleanupFunc func()

// ApplyHighlight wraps the span in marked text leaves by splitting each
// affected leaf in place, and returns a revert action that restores the
// original children of every touched parent. The flattened text before and
// after apply→revert is byte-identical; apply itself also preserves the
// flattened text, since the split pieces concatenate to the original leaf.
// Returns nil when the span is empty or detached.
func ApplyHighlight(span *Span) CleanupFunc {
	if span == nil || len(span.parts) == 0 {
		return nil
	}

	type patch struct {
		parent *Node
		saved  []*Node
	}
	var patches []patch
	saved := make(map[*Node][]*Node)

	for _, part := range span.parts {
		parent := part.leaf.Parent
		if parent == nil {
			continue
		}
		if _, ok := saved[parent]; !ok {
			orig := slices.Clone(parent.Children)
			saved[parent] = orig
			patches = append(patches, patch{parent: parent, saved: orig})
		}
		splitLeaf(parent, part)
	}
	if len(patches) == 0 {
		return nil
	}

	return func() {
		for i := len(patches) - 1; i >= 0; i-- {
			p := patches[i]
			p.parent.Children = p.saved
			for _, c := range p.saved {
				c.Parent = p.parent
			}
		}
	}
}

// splitLeaf replaces part.leaf inside parent with up to three leaves: the
// text before the range, the marked range, and the text after it.
func splitLeaf(parent *Node, part spanPart) {
	idx := slices.Index(parent.Children, part.leaf)
	if idx < 0 {
		return
	}

	text := part.leaf.Text
	start, end := part.start, part.end
	if start < 0 || end > len(text) || start >= end {
		return
	}

	var repl []*Node
	if start > 0 {
		repl = append(repl, newText(text[:start]))
	}
	marked := newText(text[start:end])
	marked.Mark = true
	repl = append(repl, marked)
	if end < len(text) {
		repl = append(repl, newText(text[end:]))
	}
	for _, n := range repl {
		n.Parent = parent
	}

	children := make([]*Node, 0, len(parent.Children)+len(repl)-1)
	children = append(children, parent.Children[:idx]...)
	children = append(children, repl...)
	children = append(children, parent.Children[idx+1:]...)
	parent.Children = children
}
