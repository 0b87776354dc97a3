package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/citemark/internal/content"
	"github.com/kk-code-lab/citemark/internal/textutil"
)

// SegmentStyle names one of the theme styles a segment is drawn with.
type SegmentStyle int

const (
	StyleBody SegmentStyle = iota
	StyleHeading
	StyleCode
	StyleQuote
)

// Segment is a run of text drawn with one style. Marked segments carry
// the citation highlight on top of their base style.
type Segment struct {
	Text   string
	Style  SegmentStyle
	Marked bool
}

// Line is one screen row of the laid-out document.
type Line struct {
	Segments []Segment
}

// Marked reports whether any segment on the line is highlighted.
func (l Line) Marked() bool {
	for _, seg := range l.Segments {
		if seg.Marked {
			return true
		}
	}
	return false
}

// FirstMarkedLine returns the index of the first highlighted line, or
// -1 when nothing is marked.
func FirstMarkedLine(lines []Line) int {
	for i, line := range lines {
		if line.Marked() {
			return i
		}
	}
	return -1
}

// styledRune is the unit the word wrapper operates on. Wrapping runes
// instead of strings keeps highlight boundaries exact even when a
// marked span is split across rows.
type styledRune struct {
	r      rune
	marked bool
}

// Layout flattens the document tree into display lines wrapped at
// width. It is a pure function of the tree, so the caller re-runs it
// after any tree mutation (highlight applied or cleared) or resize.
func Layout(doc *content.Document, width int) []Line {
	if doc == nil || doc.Root == nil {
		return nil
	}
	if width < 4 {
		width = 4
	}
	lay := &layouter{width: width}
	lay.blocks(doc.Root.Children, "", "")
	return lay.lines
}

type layouter struct {
	width int
	lines []Line
}

// blocks lays out a sibling run of block nodes with a blank line
// between them. prefix is drawn on a block's first row, contPrefix on
// the rest; both inherit from enclosing blockquotes and list items.
func (l *layouter) blocks(nodes []*content.Node, prefix, contPrefix string) {
	first := true
	for _, n := range nodes {
		if n.IsLeaf() && strings.TrimSpace(n.Text) == "" {
			continue
		}
		if !first {
			l.blank(contPrefix)
		}
		l.block(n, prefix, contPrefix)
		first = false
		prefix = contPrefix
	}
}

func (l *layouter) block(n *content.Node, prefix, contPrefix string) {
	switch n.Kind {
	case content.KindHeading:
		l.flow(leafRunes(n, true), StyleHeading, prefix, contPrefix)
	case content.KindParagraph, content.KindText:
		l.flow(leafRunes(n, true), StyleBody, prefix, contPrefix)
	case content.KindCodeBlock:
		l.codeLines(n, prefix)
	case content.KindBlockquote:
		l.blocks(n.Children, prefix+"│ ", contPrefix+"│ ")
	case content.KindList:
		for i, item := range n.Children {
			if i > 0 {
				l.blank(contPrefix)
			}
			l.listItem(item, prefix, contPrefix)
			prefix = contPrefix
		}
	case content.KindListItem:
		l.listItem(n, prefix, contPrefix)
	}
}

func (l *layouter) listItem(item *content.Node, prefix, contPrefix string) {
	bullet := prefix + "• "
	cont := contPrefix + "  "
	var inline []styledRune
	flushInline := func() {
		if len(inline) > 0 {
			l.flow(inline, StyleBody, bullet, cont)
			bullet = cont
			inline = nil
		}
	}
	for _, child := range item.Children {
		if child.IsLeaf() {
			inline = append(inline, leafRunes(child, true)...)
			continue
		}
		flushInline()
		l.block(child, bullet, cont)
		bullet = cont
	}
	flushInline()
}

// codeLines emits a code block verbatim, one display line per source
// line, tabs expanded. Code is clipped by the renderer rather than
// wrapped.
func (l *layouter) codeLines(n *content.Node, prefix string) {
	runs := leafRunes(n, false)
	line := make([]styledRune, 0, 80)
	flush := func() {
		l.lines = append(l.lines, l.assemble(line, StyleCode, prefix))
		line = line[:0]
	}
	for _, sr := range runs {
		if sr.r == '\n' {
			flush()
			continue
		}
		if sr.r == '\t' {
			pad := textutil.DefaultTabWidth - len(line)%textutil.DefaultTabWidth
			for i := 0; i < pad; i++ {
				line = append(line, styledRune{r: ' ', marked: sr.marked})
			}
			continue
		}
		line = append(line, sr)
	}
	flush()
}

// flow word-wraps a rune run into lines. Breaks happen at the last
// space that fits; a single word longer than the width is split hard.
func (l *layouter) flow(runs []styledRune, style SegmentStyle, prefix, contPrefix string) {
	avail := l.width - runewidth.StringWidth(prefix)
	if avail < 1 {
		avail = 1
	}
	first := true
	emit := func(line []styledRune) {
		p := contPrefix
		if first {
			p = prefix
			first = false
		}
		l.lines = append(l.lines, l.assemble(line, style, p))
		avail = l.width - runewidth.StringWidth(contPrefix)
		if avail < 1 {
			avail = 1
		}
	}
	runs = trimSpace(runs)
	for len(runs) > 0 {
		w := 0
		lastSpace := -1
		i := 0
		for ; i < len(runs); i++ {
			rw := runewidth.RuneWidth(runs[i].r)
			if w+rw > avail {
				break
			}
			if runs[i].r == ' ' {
				lastSpace = i
			}
			w += rw
		}
		if i >= len(runs) {
			emit(runs)
			return
		}
		if lastSpace > 0 {
			emit(runs[:lastSpace])
			runs = trimSpace(runs[lastSpace:])
			continue
		}
		if i == 0 {
			i = 1
		}
		emit(runs[:i])
		runs = trimSpace(runs[i:])
	}
	if first {
		emit(nil)
	}
}

func (l *layouter) blank(contPrefix string) {
	l.lines = append(l.lines, l.assemble(nil, StyleBody, contPrefix))
}

// assemble groups consecutive runes with the same mark flag into
// segments and prepends the structural prefix.
func (l *layouter) assemble(runs []styledRune, style SegmentStyle, prefix string) Line {
	var line Line
	if prefix != "" {
		line.Segments = append(line.Segments, Segment{Text: prefix, Style: StyleQuote})
	}
	var b strings.Builder
	marked := false
	flush := func() {
		if b.Len() > 0 {
			line.Segments = append(line.Segments, Segment{Text: b.String(), Style: style, Marked: marked})
			b.Reset()
		}
	}
	for _, sr := range runs {
		if sr.marked != marked {
			flush()
			marked = sr.marked
		}
		b.WriteRune(sr.r)
	}
	flush()
	return line
}

// leafRunes gathers the text of every leaf under n in order, tagged
// with the leaf's mark flag. With reflow set, newlines inside leaves
// become spaces so paragraphs re-wrap to the screen width.
func leafRunes(n *content.Node, reflow bool) []styledRune {
	var runs []styledRune
	var walk func(node *content.Node)
	walk = func(node *content.Node) {
		if node.IsLeaf() {
			text := textutil.SanitizeKeepLayout(node.Text)
			for _, r := range text {
				if reflow && (r == '\n' || r == '\t') {
					r = ' '
				}
				runs = append(runs, styledRune{r: r, marked: node.Mark})
			}
			return
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return runs
}

func trimSpace(runs []styledRune) []styledRune {
	for len(runs) > 0 && runs[0].r == ' ' {
		runs = runs[1:]
	}
	for len(runs) > 0 && runs[len(runs)-1].r == ' ' {
		runs = runs[:len(runs)-1]
	}
	return runs
}
