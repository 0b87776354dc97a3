// Package state holds the viewer's mutable view state and the actions
// that transform it.
package state

import (
	"github.com/kk-code-lab/citemark/internal/anchor"
	"github.com/kk-code-lab/citemark/internal/content"
)

// HighlightPhase tracks the lifecycle of the applied highlight. The
// cleanup callback runs at most once: after HighlightCleaned the clear
// action is a no-op.
type HighlightPhase int

const (
	HighlightNone HighlightPhase = iota
	HighlightApplied
	HighlightCleaned
)

// ViewState is the complete state of the viewer. The reducer is the
// only code that mutates it after construction.
type ViewState struct {
	Doc    *content.Document
	Result anchor.Result
	Span   *content.Span

	Cleanup content.CleanupFunc
	Phase   HighlightPhase

	ScrollOffset int
	LineCount    int

	ScreenWidth  int
	ScreenHeight int

	StatusMessage string
	ShouldQuit    bool
}

// ViewHeight returns the number of body rows, excluding the header and
// status bar.
func (s *ViewState) ViewHeight() int {
	h := s.ScreenHeight - 2
	if h < 1 {
		h = 1
	}
	return h
}

// MaxScroll returns the largest valid scroll offset for the current
// layout.
func (s *ViewState) MaxScroll() int {
	max := s.LineCount - s.ViewHeight()
	if max < 0 {
		max = 0
	}
	return max
}
