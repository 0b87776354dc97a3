package render

import "github.com/gdamore/tcell/v2"

// Theme carries the styles used by the renderer. Styles are resolved
// once at startup so the draw path never constructs them.
type Theme struct {
	Body      tcell.Style
	Heading   tcell.Style
	Code      tcell.Style
	Quote     tcell.Style
	Header    tcell.Style
	Status    tcell.Style
	Highlight tcell.Style
}

// DefaultTheme returns the built-in color scheme. It leans on the
// terminal's default background so the viewer blends with the shell.
func DefaultTheme() *Theme {
	body := tcell.StyleDefault
	return &Theme{
		Body:      body,
		Heading:   body.Foreground(tcell.ColorAqua).Bold(true),
		Code:      body.Foreground(tcell.ColorLightGreen),
		Quote:     body.Foreground(tcell.ColorGray).Italic(true),
		Header:    body.Reverse(true).Bold(true),
		Status:    body.Reverse(true),
		Highlight: body.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack),
	}
}
