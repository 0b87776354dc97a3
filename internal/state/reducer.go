package state

// Reducer applies actions to the view state. It owns all mutation so
// the render and input layers stay read-only over ViewState.
type Reducer struct{}

func NewReducer() *Reducer {
	return &Reducer{}
}

// Apply performs a single state transition. Unknown actions are
// ignored.
func (r *Reducer) Apply(s *ViewState, action Action) {
	switch a := action.(type) {
	case ScrollAction:
		r.scrollBy(s, a.Delta)
	case ScrollToTopAction:
		s.ScrollOffset = 0
	case ScrollToBottomAction:
		s.ScrollOffset = s.MaxScroll()
	case ResizeAction:
		s.ScreenWidth = a.Width
		s.ScreenHeight = a.Height
		r.clampScroll(s)
	case ClearHighlightAction:
		r.clearHighlight(s)
	case QuitAction:
		s.ShouldQuit = true
	}
}

func (r *Reducer) scrollBy(s *ViewState, delta int) {
	s.ScrollOffset += delta
	r.clampScroll(s)
}

func (r *Reducer) clampScroll(s *ViewState) {
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if max := s.MaxScroll(); s.ScrollOffset > max {
		s.ScrollOffset = max
	}
}

// clearHighlight runs the highlight cleanup callback. Once the
// highlight is cleaned the callback is dropped, so repeated clear
// actions cannot run it twice.
func (r *Reducer) clearHighlight(s *ViewState) {
	if s.Phase != HighlightApplied || s.Cleanup == nil {
		return
	}
	s.Cleanup()
	s.Cleanup = nil
	s.Phase = HighlightCleaned
	s.StatusMessage = "highlight cleared"
}
