// Package app wires the anchor engine, content tree, and terminal UI
// into the interactive viewer.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/citemark/internal/anchor"
	"github.com/kk-code-lab/citemark/internal/content"
	"github.com/kk-code-lab/citemark/internal/state"
	"github.com/kk-code-lab/citemark/internal/ui/input"
	"github.com/kk-code-lab/citemark/internal/ui/render"
)

// Config carries everything the viewer needs. Screen may be set by
// tests to a tcell simulation screen; when nil a real terminal screen
// is created.
type Config struct {
	Doc      *content.Document
	Selector anchor.Selector
	Screen   tcell.Screen
}

// Application owns the screen and runs the event loop.
type Application struct {
	screen     tcell.Screen
	ownsScreen bool

	state    *state.ViewState
	reducer  *state.Reducer
	renderer *render.Renderer
	handler  *input.Handler

	lines []render.Line
}

// Resolve anchors the selector in the document and, when found,
// highlights the matched span in the tree. It is the headless half of
// the viewer, shared with the --json mode.
func Resolve(doc *content.Document, sel anchor.Selector) (anchor.Result, *content.Span) {
	var span *content.Span
	result := anchor.Anchor(doc.FlatText(), sel, func(pos anchor.TextPosition) bool {
		span = content.MapToSpan(doc, pos)
		return span != nil
	})
	if !result.Found {
		span = nil
	}
	return result, span
}

// NewApplication resolves the citation and prepares the terminal.
func NewApplication(cfg Config) (*Application, error) {
	if cfg.Doc == nil {
		return nil, fmt.Errorf("app: no document")
	}

	result, span := Resolve(cfg.Doc, cfg.Selector)

	s := &state.ViewState{
		Doc:    cfg.Doc,
		Result: result,
		Span:   span,
	}
	if span != nil {
		s.Cleanup = content.ApplyHighlight(span)
		s.Phase = state.HighlightApplied
	} else if result.Found {
		// Anchored in the flat text but the tree has shifted
		// underneath; show the document without a highlight.
		s.StatusMessage = "match could not be placed in the document"
	}

	screen := cfg.Screen
	ownsScreen := false
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("app: create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("app: init screen: %w", err)
		}
		ownsScreen = true
	}

	a := &Application{
		screen:     screen,
		ownsScreen: ownsScreen,
		state:      s,
		reducer:    state.NewReducer(),
		renderer:   render.NewRenderer(screen, render.DefaultTheme()),
		handler:    input.NewHandler(),
	}

	w, h := screen.Size()
	a.reducer.Apply(s, state.ResizeAction{Width: w, Height: h})
	a.relayout()
	a.scrollToHighlight()
	return a, nil
}

// Run drives the event loop until quit. The screen is restored on
// return.
func (a *Application) Run() error {
	if a.ownsScreen {
		defer a.screen.Fini()
	}
	for !a.state.ShouldQuit {
		a.renderer.Render(a.state, a.lines)
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.dispatch(ev)
	}
	return nil
}

// HandleEvent applies one event's worth of actions. Exposed for tests
// driving a simulation screen without the blocking loop.
func (a *Application) HandleEvent(ev tcell.Event) {
	a.dispatch(ev)
}

func (a *Application) dispatch(ev tcell.Event) {
	phase := a.state.Phase
	for _, action := range a.handler.HandleEvent(ev, a.state) {
		a.reducer.Apply(a.state, action)
		switch action.(type) {
		case state.ResizeAction:
			a.relayout()
		case state.ClearHighlightAction:
			if a.state.Phase != phase {
				// Tree changed shape, layout is stale.
				a.relayout()
			}
		}
	}
}

// relayout rebuilds display lines from the tree at the current width
// and re-clamps the scroll position.
func (a *Application) relayout() {
	a.lines = render.Layout(a.state.Doc, a.state.ScreenWidth)
	a.state.LineCount = len(a.lines)
	a.reducer.Apply(a.state, state.ScrollAction{Delta: 0})
}

// scrollToHighlight positions the first marked line a third of the way
// down the screen, matching where a reader's eye lands.
func (a *Application) scrollToHighlight() {
	marked := render.FirstMarkedLine(a.lines)
	if marked < 0 {
		return
	}
	target := marked - a.state.ViewHeight()/3
	if target < 0 {
		target = 0
	}
	a.state.ScrollOffset = target
	a.reducer.Apply(a.state, state.ScrollAction{Delta: 0})
}

// Render draws one frame. Exposed for tests.
func (a *Application) Render() {
	a.renderer.Render(a.state, a.lines)
}

// State exposes the view state for tests.
func (a *Application) State() *state.ViewState {
	return a.state
}
