package content

import "strings"

// ParsePlainText builds a content tree from plain text: runs of non-blank
// lines become paragraphs, one leaf each.
func ParsePlainText(src string) *Document {
	root := &Node{Kind: KindDocument}
	var para []string
	flush := func() {
		if len(para) == 0 {
			return
		}
		p := &Node{Kind: KindParagraph}
		p.AppendChild(newText(strings.Join(para, "\n")))
		root.AppendChild(p)
		para = para[:0]
	}
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		para = append(para, line)
	}
	flush()
	return &Document{Root: root}
}
