package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/mattn/go-runewidth"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var content string
	switch a.mode {
	case ModeForm:
		content = styles.Dialog.Render(a.form.View())
	case ModeConfirmDelete:
		content = a.renderConfirm()
	case ModeJournal:
		content = a.renderJournalView()
	default:
		content = a.renderList()
	}

	return styles.App.Render(content)
}

func (a *App) renderList() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	switch {
	case a.loading && len(a.todos) == 0:
		b.WriteString(a.spinner.View() + " Loading todos...")
	case len(a.derived.Items) == 0:
		b.WriteString(styles.HelpDesc.Render("No todos match."))
	default:
		today := a.today()
		for i, t := range a.derived.Items {
			b.WriteString(a.renderTodo(t, i == a.cursor, today))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.renderPager())
	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a *App) renderHeader() string {
	title := styles.Title.Render("Todos")
	if a.opts.User != "" {
		title += styles.Subtitle.Render("  " + a.opts.User)
	}

	state := a.ctrl.Store.State()
	category := state.Category
	if category == view.AllCategories {
		category = "All"
	}
	line := fmt.Sprintf("%s %s  %s %s  %s %s",
		styles.StatusBarKey.Render("Filter:"), state.Filter.Label(),
		styles.StatusBarKey.Render("Category:"), category,
		styles.StatusBarKey.Render("Sort:"), state.Sort.Label(),
	)
	return title + "\n" + line
}

func (a *App) renderTodo(t api.Todo, selected bool, today api.Date) string {
	checkbox := styles.CheckboxUnchecked
	if t.Done {
		checkbox = styles.CheckboxChecked
	}

	category := strings.TrimSpace(t.Category)
	badge := ""
	if category != "" {
		badge = styles.Category(category).Render("#" + category)
	}

	dueStyle := styles.TodoDue
	if due, ok := t.Due(); ok && !t.Done {
		switch {
		case due.Before(today):
			dueStyle = styles.TodoDueOverdue
		case due == today:
			dueStyle = styles.TodoDueToday
		}
	}
	dueText := dueStyle.Render(t.DueDisplay())

	// Whatever is left after checkbox, badge and due date goes to the text.
	textWidth := a.width - 12 - lipgloss.Width(badge) - lipgloss.Width(dueText) - len(checkbox)
	text := truncate(t.Text, max(textWidth, 10))
	if t.Done {
		text = styles.TodoDone.Render(text)
	}

	line := fmt.Sprintf("%s %s %s%s", checkbox, text, badge, dueText)
	if selected {
		return styles.TodoSelected.Render(line)
	}
	return styles.TodoItem.Render(line)
}

func (a *App) renderPager() string {
	d := a.derived
	info := fmt.Sprintf("Page %d/%d · %d todos", d.Page, d.TotalPages, d.TotalFiltered)
	if d.TotalPages <= 1 {
		return styles.HelpDesc.Render(info)
	}
	return a.paginator.View() + "  " + styles.HelpDesc.Render(info)
}

func (a *App) renderStatusBar() string {
	var b strings.Builder
	switch {
	case a.err != nil:
		b.WriteString(styles.StatusBarError.Render("Error: " + a.err.Error()))
	case a.loading:
		b.WriteString(a.spinner.View())
	case a.statusMsg != "":
		b.WriteString(styles.StatusBarSuccess.Render(a.statusMsg))
	}

	b.WriteString("\n")
	if a.showHelp {
		b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	} else {
		b.WriteString(a.help.ShortHelpView(a.keymap.ShortHelp()))
	}
	return styles.StatusBar.Render(b.String())
}

func (a *App) renderConfirm() string {
	text := ""
	if a.pendingDelete != nil {
		text = truncate(a.pendingDelete.Text, 40)
	}
	body := styles.DialogTitle.Render("Delete todo?") + "\n\n" +
		text + "\n\n" +
		styles.HelpDesc.Render("y: delete • any other key: cancel")
	return styles.Dialog.Render(body)
}

func (a *App) renderJournalView() string {
	if !a.journalLoaded {
		return a.spinner.View() + " Loading journal..."
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Journal " + a.journalEntry.Date.String()))
	b.WriteString("\n")
	b.WriteString(a.journalView.View())
	b.WriteString("\n")
	if a.err != nil {
		b.WriteString(styles.StatusBarError.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpDesc.Render("←/→: day • m: mood • w: water • esc: back"))
	return b.String()
}

// truncate shortens s to width terminal cells, ending in "…" when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
