// Package content models a parsed document as a tree of blocks with
// text-bearing leaves, and resolves normalized-text positions to concrete
// spans over those leaves. Loaders build the tree from plain text, markdown,
// or HTML; the viewer renders it; the highlighter mutates it reversibly.
package content

import "strings"

// NodeKind distinguishes block branches from text leaves.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindHeading
	KindParagraph
	KindCodeBlock
	KindBlockquote
	KindList
	KindListItem
	KindText
)

// Node is one element of a content tree. Text leaves (KindText) carry the
// raw text; everything else is a branch. Mark flags a leaf as highlighted.
type Node struct {
	Kind     NodeKind
	Level    int    // heading level, 1-6
	Text     string // leaves only
	Mark     bool
	Parent   *Node
	Children []*Node
}

// Document owns a content tree.
type Document struct {
	Title string
	Path  string
	Root  *Node
}

// IsLeaf reports whether n is a text-bearing leaf.
func (n *Node) IsLeaf() bool { return n.Kind == KindText }

// AppendChild attaches child to n, fixing its parent pointer.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// newText returns a detached text leaf.
func newText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// blockSeparator joins distinct blocks in the flattened text. It normalizes
// to a single space, so flattened offsets stay aligned with what the
// normalizer produces.
const blockSeparator = "\n\n"

// leafRange places one leaf inside the flattened text.
type leafRange struct {
	node  *Node
	start int // byte offset into the flat text
	end   int
}

// FlatText returns the document's text content: leaf texts in document
// order, with a block separator wherever two adjacent leaves belong to
// different blocks. Leaves inside the same block concatenate directly, so
// inline splits (e.g. HTML formatting elements) do not inject whitespace.
func (d *Document) FlatText() string {
	flat, _ := d.flatten()
	return flat
}

// flatten walks the tree once and returns the flat text together with the
// arena of leaf positions, built fresh per call so structural mutations
// (highlights) are always reflected.
func (d *Document) flatten() (string, []leafRange) {
	var b strings.Builder
	var arena []leafRange
	var lastBlock *Node

	var walk func(n *Node, block *Node)
	walk = func(n *Node, block *Node) {
		if n.IsLeaf() {
			if lastBlock != nil && block != lastBlock {
				b.WriteString(blockSeparator)
			}
			lastBlock = block
			start := b.Len()
			b.WriteString(n.Text)
			arena = append(arena, leafRange{node: n, start: start, end: b.Len()})
			return
		}
		for _, c := range n.Children {
			childBlock := block
			if !c.IsLeaf() {
				childBlock = c
			}
			walk(c, childBlock)
		}
	}
	if d.Root != nil {
		walk(d.Root, d.Root)
	}
	return b.String(), arena
}

// Leaves returns the text-bearing leaves in document order.
func (d *Document) Leaves() []*Node {
	_, arena := d.flatten()
	leaves := make([]*Node, len(arena))
	for i, lr := range arena {
		leaves[i] = lr.node
	}
	return leaves
}
