// Package input translates tcell events into view actions.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/citemark/internal/state"
)

// Handler maps terminal events to actions. It is stateless; pager keys
// need no modal context.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// HandleEvent returns the actions an event produces. Unrecognized
// events yield nil.
func (h *Handler) HandleEvent(ev tcell.Event, s *state.ViewState) []state.Action {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(e, s)
	case *tcell.EventResize:
		w, hgt := e.Size()
		return []state.Action{state.ResizeAction{Width: w, Height: hgt}}
	}
	return nil
}

func (h *Handler) handleKey(ev *tcell.EventKey, s *state.ViewState) []state.Action {
	page := s.ViewHeight() - 1
	if page < 1 {
		page = 1
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return []state.Action{state.QuitAction{}}
	case tcell.KeyUp:
		return []state.Action{state.ScrollAction{Delta: -1}}
	case tcell.KeyDown:
		return []state.Action{state.ScrollAction{Delta: 1}}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		return []state.Action{state.ScrollAction{Delta: -page}}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		return []state.Action{state.ScrollAction{Delta: page}}
	case tcell.KeyHome:
		return []state.Action{state.ScrollToTopAction{}}
	case tcell.KeyEnd:
		return []state.Action{state.ScrollToBottomAction{}}
	case tcell.KeyRune:
		return h.handleRune(ev.Rune(), page)
	}
	return nil
}

func (h *Handler) handleRune(r rune, page int) []state.Action {
	switch r {
	case 'q':
		return []state.Action{state.QuitAction{}}
	case 'j':
		return []state.Action{state.ScrollAction{Delta: 1}}
	case 'k':
		return []state.Action{state.ScrollAction{Delta: -1}}
	case ' ':
		return []state.Action{state.ScrollAction{Delta: page}}
	case 'b':
		return []state.Action{state.ScrollAction{Delta: -page}}
	case 'g':
		return []state.Action{state.ScrollToTopAction{}}
	case 'G':
		return []state.Action{state.ScrollToBottomAction{}}
	case 'c':
		return []state.Action{state.ClearHighlightAction{}}
	}
	return nil
}
