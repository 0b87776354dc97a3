package content

import (
	"strings"
	"unicode"
)

// ParseMarkdown builds a content tree from markdown source. The parser is
// block-level only: headings, fenced code, blockquotes, lists, and
// paragraphs. Inline emphasis is left verbatim in the leaf text, so the
// flattened document reads exactly like the source passage a citation was
// quoted from.
func ParseMarkdown(src string) *Document {
	root := &Node{Kind: KindDocument}
	lines := strings.Split(src, "\n")
	parseMarkdownBlocks(root, lines)
	return &Document{Root: root}
}

func parseMarkdownBlocks(parent *Node, lines []string) {
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")

		if fence, ok := detectFence(trimmed); ok {
			i = parseFencedCode(parent, lines, i, fence)
			continue
		}
		if strings.HasPrefix(trimmed, ">") {
			i = parseBlockquote(parent, lines, i)
			continue
		}
		if level, text, ok := parseHeading(trimmed); ok {
			h := &Node{Kind: KindHeading, Level: level}
			h.AppendChild(newText(text))
			parent.AppendChild(h)
			i++
			continue
		}
		if marker, ok := listMarker(trimmed); ok {
			i = parseList(parent, lines, i, marker)
			continue
		}
		i = parseParagraph(parent, lines, i)
	}
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func detectFence(trimmed string) (string, bool) {
	for _, fence := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, fence) {
			return fence, true
		}
	}
	return "", false
}

func parseFencedCode(parent *Node, lines []string, start int, fence string) int {
	var body []string
	i := start + 1
	for i < len(lines) {
		if strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), fence) {
			i++
			break
		}
		body = append(body, lines[i])
		i++
	}
	code := &Node{Kind: KindCodeBlock}
	code.AppendChild(newText(strings.Join(body, "\n")))
	parent.AppendChild(code)
	return i
}

func parseBlockquote(parent *Node, lines []string, start int) int {
	var inner []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i], " \t")
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		stripped := strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " ")
		inner = append(inner, stripped)
		i++
	}
	quote := &Node{Kind: KindBlockquote}
	parseMarkdownBlocks(quote, inner)
	parent.AppendChild(quote)
	return i
}

func parseHeading(trimmed string) (int, string, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(strings.TrimRight(rest, "# ")), true
}

// listMarker reports the marker ("-", "*", "+", or "1." style) opening a
// list item, if any.
func listMarker(trimmed string) (string, bool) {
	if len(trimmed) >= 2 {
		switch trimmed[0] {
		case '-', '*', '+':
			if trimmed[1] == ' ' {
				return string(trimmed[0]), true
			}
		}
	}
	i := 0
	for i < len(trimmed) && unicode.IsDigit(rune(trimmed[i])) {
		i++
	}
	if i > 0 && i < len(trimmed)-1 && (trimmed[i] == '.' || trimmed[i] == ')') && trimmed[i+1] == ' ' {
		return trimmed[:i+1], true
	}
	return "", false
}

func parseList(parent *Node, lines []string, start int, _ string) int {
	list := &Node{Kind: KindList}
	i := start
	for i < len(lines) {
		trimmed := strings.TrimLeft(lines[i], " \t")
		marker, ok := listMarker(trimmed)
		if !ok {
			break
		}
		itemText := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		item := &Node{Kind: KindListItem}
		item.AppendChild(newText(itemText))
		list.AppendChild(item)
		i++
	}
	parent.AppendChild(list)
	return i
}

func parseParagraph(parent *Node, lines []string, start int) int {
	var parts []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		trimmed := strings.TrimLeft(line, " \t")
		if _, ok := detectFence(trimmed); ok {
			break
		}
		if strings.HasPrefix(trimmed, ">") {
			break
		}
		if _, _, ok := parseHeading(trimmed); ok {
			break
		}
		if _, ok := listMarker(trimmed); ok {
			break
		}
		parts = append(parts, strings.TrimSpace(line))
		i++
	}
	para := &Node{Kind: KindParagraph}
	para.AppendChild(newText(strings.Join(parts, "\n")))
	parent.AppendChild(para)
	return i
}
