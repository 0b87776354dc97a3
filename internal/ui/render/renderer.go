// Package render lays out the document tree and draws it to a tcell
// screen.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/citemark/internal/anchor"
	"github.com/kk-code-lab/citemark/internal/state"
	"github.com/kk-code-lab/citemark/internal/textutil"
)

// Renderer draws the viewer: a header row, the document body, and a
// status bar.
type Renderer struct {
	screen tcell.Screen
	theme  *Theme
}

func NewRenderer(screen tcell.Screen, theme *Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws a full frame. lines is the current layout of the
// document; the caller keeps it in sync with the tree and the screen
// width.
func (r *Renderer) Render(s *state.ViewState, lines []Line) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width <= 0 || height <= 0 {
		r.screen.Show()
		return
	}

	r.drawHeader(s, width)
	r.drawBody(s, lines, width, height)
	if height > 1 {
		r.drawStatus(s, lines, width, height-1)
	}
	r.screen.Show()
}

func (r *Renderer) drawHeader(s *state.ViewState, width int) {
	title := "citemark"
	if s.Doc != nil && s.Doc.Title != "" {
		title = s.Doc.Title
	}
	r.drawBar(0, " "+textutil.SanitizeLine(title), width, r.theme.Header)
}

func (r *Renderer) drawBody(s *state.ViewState, lines []Line, width, height int) {
	bodyRows := height - 2
	if bodyRows < 0 {
		bodyRows = 0
	}
	for row := 0; row < bodyRows; row++ {
		idx := s.ScrollOffset + row
		if idx >= len(lines) {
			break
		}
		r.drawLine(row+1, lines[idx], width)
	}
}

func (r *Renderer) drawLine(y int, line Line, width int) {
	x := 0
	for _, seg := range line.Segments {
		style := r.segmentStyle(seg)
		for _, ch := range seg.Text {
			if x >= width {
				return
			}
			r.screen.SetContent(x, y, ch, nil, style)
			x += runewidth.RuneWidth(ch)
		}
	}
}

func (r *Renderer) segmentStyle(seg Segment) tcell.Style {
	if seg.Marked {
		return r.theme.Highlight
	}
	switch seg.Style {
	case StyleHeading:
		return r.theme.Heading
	case StyleCode:
		return r.theme.Code
	case StyleQuote:
		return r.theme.Quote
	default:
		return r.theme.Body
	}
}

// drawStatus shows the anchoring outcome on the left and position plus
// key hints on the right.
func (r *Renderer) drawStatus(s *state.ViewState, lines []Line, width, y int) {
	left := " " + anchorSummary(s)
	if s.StatusMessage != "" {
		left += " — " + s.StatusMessage
	}
	right := fmt.Sprintf("%s  j/k scroll · c clear · q quit ", scrollPercent(s, len(lines)))

	r.drawBar(y, left, width, r.theme.Status)
	rw := runewidth.StringWidth(right)
	if x := width - rw; x > runewidth.StringWidth(left) {
		col := x
		for _, ch := range right {
			r.screen.SetContent(col, y, ch, nil, r.theme.Status)
			col += runewidth.RuneWidth(ch)
		}
	}
}

func (r *Renderer) drawBar(y int, text string, width int, style tcell.Style) {
	text = textutil.TruncateToWidth(text, width)
	x := 0
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// anchorSummary describes how the citation was located, mirroring the
// JSON result fields in prose.
func anchorSummary(s *state.ViewState) string {
	res := s.Result
	if !res.Found {
		return "citation not found"
	}
	switch res.Fallback {
	case anchor.FallbackNone:
		if res.MatchCount > 1 {
			return fmt.Sprintf("exact match (%d candidates)", res.MatchCount)
		}
		return "exact match"
	case anchor.FallbackShortSnippet:
		return "matched by leading snippet"
	case anchor.FallbackFuzzy:
		return fmt.Sprintf("fuzzy match (%.0f%% similar)", res.Confidence*100)
	}
	return "matched"
}

func scrollPercent(s *state.ViewState, total int) string {
	if total == 0 || s.MaxScroll() == 0 {
		return "All"
	}
	if s.ScrollOffset == 0 {
		return "Top"
	}
	if s.ScrollOffset >= s.MaxScroll() {
		return "Bot"
	}
	return fmt.Sprintf("%d%%", s.ScrollOffset*100/s.MaxScroll())
}
