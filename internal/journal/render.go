package journal

import (
	"github.com/charmbracelet/glamour"
	"github.com/hy4ri/todo-journal/internal/api"
)

// Render formats the page for a terminal of the given width. style is a
// glamour style name such as "dark", "light" or "notty"; empty picks one
// from the terminal background. If glamour fails the plain markdown is
// returned with the error.
func Render(e api.JournalEntry, style string, width int) (string, error) {
	md := Markdown(e)

	opts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md, err
	}
	out, err := r.Render(md)
	if err != nil {
		return md, err
	}
	return out, nil
}
