package state

// Action is a state transition request produced by the input layer and
// consumed by the reducer.
type Action interface {
	isAction()
}

// ScrollAction moves the viewport by Delta lines. Negative is up.
type ScrollAction struct {
	Delta int
}

// ScrollToTopAction jumps to the first line.
type ScrollToTopAction struct{}

// ScrollToBottomAction jumps so the last line is visible.
type ScrollToBottomAction struct{}

// ResizeAction records a new terminal size.
type ResizeAction struct {
	Width  int
	Height int
}

// ClearHighlightAction removes the citation highlight from the
// document tree.
type ClearHighlightAction struct{}

// QuitAction ends the event loop.
type QuitAction struct{}

func (ScrollAction) isAction()         {}
func (ScrollToTopAction) isAction()    {}
func (ScrollToBottomAction) isAction() {}
func (ResizeAction) isAction()         {}
func (ClearHighlightAction) isAction() {}
func (QuitAction) isAction()           {}
