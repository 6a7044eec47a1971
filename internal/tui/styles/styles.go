// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/muesli/termenv"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for selected items
	Highlight = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

// CategoryColors are the badge colours a category hashes into, see
// view.CategoryColor.
var CategoryColors = [view.CategoryPalette]lipgloss.AdaptiveColor{
	{Light: "#1D4ED8", Dark: "#93C5FD"}, // blue
	{Light: "#047857", Dark: "#6EE7B7"}, // green
	{Light: "#B45309", Dark: "#FCD34D"}, // amber
	{Light: "#BE123C", Dark: "#FDA4AF"}, // rose
	{Light: "#6D28D9", Dark: "#C4B5FD"}, // violet
	{Light: "#0F766E", Dark: "#5EEAD4"}, // teal
}

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// Todo styles
var (
	TodoItem = lipgloss.NewStyle().
			PaddingLeft(2)

	TodoSelected = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(Highlight).
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A2A"})

	TodoDone = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	TodoDue = lipgloss.NewStyle().
		Foreground(Subtle).
		PaddingLeft(1)

	TodoDueOverdue = lipgloss.NewStyle().
			Foreground(ErrorColor).
			PaddingLeft(1)

	TodoDueToday = lipgloss.NewStyle().
			Foreground(SuccessColor).
			PaddingLeft(1)

	CategoryBadge = lipgloss.NewStyle().
			Padding(0, 1)
)

// StatusBar styles
var (
	StatusBar = lipgloss.NewStyle().
			Foreground(Subtle).
			PaddingTop(1)

	StatusBarKey = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor)
)

// Help styles
var (
	HelpKey = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Input styles
var (
	InputLabel = lipgloss.NewStyle().
		Foreground(Subtle).
		Bold(true)
)

// Dialog styles
var (
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)
)

// Spinner style
var Spinner = lipgloss.NewStyle().
	Foreground(Highlight)

// Pager dots
var (
	PagerActive   = lipgloss.NewStyle().Foreground(Highlight).Render("•")
	PagerInactive = lipgloss.NewStyle().Foreground(Subtle).Render("•")
)

// Checkbox glyphs
const (
	CheckboxUnchecked = "[ ]"
	CheckboxChecked   = "[x]"
)

// Category returns the badge style for a category. Empty categories get a
// plain subtle style.
func Category(name string) lipgloss.Style {
	idx := view.CategoryColor(name)
	if idx < 0 {
		return CategoryBadge.Foreground(Subtle)
	}
	return CategoryBadge.Foreground(CategoryColors[idx])
}

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// DetectTheme asks the terminal for its background colour.
func DetectTheme() string {
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme makes adaptive colours resolve for theme. Unknown names leave
// the detected background in place.
func ApplyTheme(theme string) {
	switch theme {
	case ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	}
}

// ToggleTheme returns the other theme.
func ToggleTheme(theme string) string {
	if theme == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// DisableColor renders everything without colour, for tests and dumb
// terminals.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
