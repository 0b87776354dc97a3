package content

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineAtoms are formatting elements that do not break text flow: their text
// joins the enclosing block's leaves directly, so "Hel<b>lo</b>" flattens to
// "Hello".
var inlineAtoms = map[atom.Atom]struct{}{
	atom.A: {}, atom.Abbr: {}, atom.B: {}, atom.Cite: {}, atom.Code: {},
	atom.Em: {}, atom.I: {}, atom.Mark: {}, atom.Q: {}, atom.S: {},
	atom.Small: {}, atom.Span: {}, atom.Strong: {}, atom.Sub: {},
	atom.Sup: {}, atom.Time: {}, atom.U: {},
}

// skippedAtoms contain no citable text.
var skippedAtoms = map[atom.Atom]struct{}{
	atom.Script: {}, atom.Style: {}, atom.Head: {}, atom.Noscript: {},
	atom.Template: {}, atom.Iframe: {},
}

// ParseHTML builds a content tree from an HTML or XHTML document (e.g. an
// EPUB chapter). Block elements become branches, text nodes become leaves,
// and inline formatting elements are dissolved into their enclosing block.
// The document title, when present, is captured but not part of the tree.
func ParseHTML(src string) (*Document, error) {
	parsed, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	doc := &Document{Root: &Node{Kind: KindDocument}}
	var walk func(n *html.Node, block *Node)
	walk = func(n *html.Node, block *Node) {
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				block.AppendChild(newText(n.Data))
			} else if k := len(block.Children); k > 0 && block.Children[k-1].IsLeaf() {
				// Whitespace between inline runs ("<b>a</b> <i>b</i>")
				// still separates words; keep a single space. Pretty-
				// printing whitespace between blocks has no leaf before
				// it and is dropped.
				block.AppendChild(newText(" "))
			}
			return
		case html.ElementNode:
			if _, skip := skippedAtoms[n.DataAtom]; skip {
				if n.DataAtom == atom.Head {
					doc.Title = findTitle(n)
				}
				return
			}
			if kind, level, isBlock := blockKind(n.DataAtom); isBlock {
				child := &Node{Kind: kind, Level: level}
				block.AppendChild(child)
				block = child
			}
			// Inline and unknown elements dissolve into the current block.
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, block)
		}
	}
	walk(parsed, doc.Root)
	return doc, nil
}

func blockKind(a atom.Atom) (NodeKind, int, bool) {
	switch a {
	case atom.H1:
		return KindHeading, 1, true
	case atom.H2:
		return KindHeading, 2, true
	case atom.H3:
		return KindHeading, 3, true
	case atom.H4:
		return KindHeading, 4, true
	case atom.H5:
		return KindHeading, 5, true
	case atom.H6:
		return KindHeading, 6, true
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Figcaption,
		atom.Td, atom.Th, atom.Caption, atom.Dt, atom.Dd:
		return KindParagraph, 0, true
	case atom.Pre:
		return KindCodeBlock, 0, true
	case atom.Blockquote:
		return KindBlockquote, 0, true
	case atom.Ul, atom.Ol:
		return KindList, 0, true
	case atom.Li:
		return KindListItem, 0, true
	}
	return 0, 0, false
}

func findTitle(head *html.Node) string {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Title {
			if c.FirstChild != nil && c.FirstChild.Type == html.TextNode {
				return strings.TrimSpace(c.FirstChild.Data)
			}
		}
	}
	return ""
}
