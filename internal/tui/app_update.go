package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		// Reserve space for the title, the pager and the status bar.
		a.journalView = viewport.New(max(msg.Width-4, 20), max(msg.Height-8, 5))
		if a.form != nil {
			a.form.SetWidth(msg.Width)
		}
		if a.journalLoaded {
			a.renderJournal()
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case errMsg:
		a.loading = false
		a.err = msg.err
		a.logger.Error("request failed", "err", msg.err)
		return a, nil

	case statusMsg:
		a.statusMsg = msg.msg
		return a, nil

	case todosLoadedMsg:
		a.loading = false
		a.err = nil
		a.todos = msg.todos
		a.recompute()
		if a.opts.NotifyDue {
			return a, a.notifyDue()
		}
		return a, nil

	case todoCreatedMsg:
		a.loading = false
		a.todos = append([]api.Todo{*msg.todo}, a.todos...)
		a.persistErr(a.ctrl.Store.SetPage(1))
		a.cursor = 0
		a.recompute()
		a.statusMsg = "Todo added"
		return a, nil

	case todoUpdatedMsg:
		a.loading = false
		for i := range a.todos {
			if a.todos[i].ID == msg.todo.ID {
				todos := slices.Clone(a.todos)
				todos[i] = *msg.todo
				a.todos = todos
				break
			}
		}
		a.recompute()
		a.statusMsg = "Todo saved"
		return a, nil

	case todoDeletedMsg:
		a.loading = false
		for i := range a.todos {
			if a.todos[i].ID == msg.id {
				a.todos = slices.Delete(slices.Clone(a.todos), i, i+1)
				break
			}
		}
		a.recompute()
		a.statusMsg = "Todo deleted"
		return a, nil

	case journalLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.err = msg.err
			a.logger.Warn("journal request failed", "err", msg.err)
		}
		a.journalEntry = msg.entry
		a.journalLoaded = true
		a.renderJournal()
		return a, nil

	case checkDueMsg:
		return a, tea.Batch(a.notifyDue(), checkDueCmd())
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while typing.
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case ModeForm:
		return a.handleFormKey(msg)
	case ModeConfirmDelete:
		return a.handleConfirmKey(msg)
	case ModeJournal:
		return a.handleJournalKey(msg)
	}

	a.err = nil
	a.statusMsg = ""

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keymap.Help):
		a.showHelp = !a.showHelp

	case key.Matches(msg, a.keymap.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keymap.Down):
		if a.cursor < len(a.derived.Items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keymap.NextPage):
		a.persistErr(a.ctrl.NextPage(a.todos))
		a.cursor = 0
		a.recompute()

	case key.Matches(msg, a.keymap.PrevPage):
		a.persistErr(a.ctrl.PrevPage(a.todos))
		a.cursor = 0
		a.recompute()

	case key.Matches(msg, a.keymap.CycleFilter):
		a.persistErr(a.ctrl.CycleFilter())
		a.cursor = 0
		a.recompute()

	case key.Matches(msg, a.keymap.CycleCategory):
		a.persistErr(a.ctrl.CycleCategory(a.todos))
		a.cursor = 0
		a.recompute()

	case key.Matches(msg, a.keymap.CycleSort):
		a.persistErr(a.ctrl.CycleSort())
		a.cursor = 0
		a.recompute()

	case key.Matches(msg, a.keymap.Add):
		a.form = NewTodoForm(a.today(), a.derived.Categories)
		a.form.SetWidth(a.width)
		a.mode = ModeForm
		return a, textinput.Blink

	case key.Matches(msg, a.keymap.Edit):
		if t, ok := a.selected(); ok {
			a.form = NewEditTodoForm(t, a.today(), a.derived.Categories)
			a.form.SetWidth(a.width)
			a.mode = ModeForm
		}

	case key.Matches(msg, a.keymap.Toggle):
		if t, ok := a.selected(); ok {
			a.loading = true
			return a, a.toggleTodo(t)
		}

	case key.Matches(msg, a.keymap.Delete):
		if t, ok := a.selected(); ok {
			a.pendingDelete = &t
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keymap.Copy):
		if t, ok := a.selected(); ok {
			return a, a.copyTodo(t)
		}

	case key.Matches(msg, a.keymap.Refresh):
		a.loading = true
		return a, a.loadTodos()

	case key.Matches(msg, a.keymap.Theme):
		a.toggleTheme()

	case key.Matches(msg, a.keymap.Journal):
		a.mode = ModeJournal
		a.loading = true
		return a, a.loadJournal(a.today())
	}

	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form = nil
		a.mode = ModeList
		return a, nil

	case "enter":
		return a.submitForm()
	}

	var cmd tea.Cmd
	a.form, cmd = a.form.Update(msg)
	return a, cmd
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	form := a.form
	if form.Mode == "edit" {
		patch, err := form.ToPatch()
		if err != nil {
			return a, nil
		}
		a.form = nil
		a.mode = ModeList
		a.loading = true
		return a, a.updateTodo(form.TodoID, patch)
	}

	text, due, category, err := form.Values()
	if err != nil {
		return a, nil
	}
	a.form = nil
	a.mode = ModeList
	a.loading = true
	return a, a.createTodo(text, due, category)
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := a.pendingDelete
	a.pendingDelete = nil
	a.mode = ModeList

	switch msg.String() {
	case "y", "Y":
		if target != nil {
			a.loading = true
			return a, a.deleteTodo(target.ID)
		}
	default:
		a.statusMsg = "Delete cancelled"
	}
	return a, nil
}

func (a *App) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !a.journalLoaded {
		if key.Matches(msg, a.keymap.Back) {
			a.mode = ModeList
		}
		return a, nil
	}

	entry := a.journalEntry
	switch {
	case key.Matches(msg, a.keymap.Back), key.Matches(msg, a.keymap.Quit):
		a.mode = ModeList
		a.journalLoaded = false
		return a, nil

	case key.Matches(msg, a.keymap.PrevPage):
		a.loading = true
		return a, a.loadJournal(entry.Date.AddDays(-1))

	case key.Matches(msg, a.keymap.NextPage):
		a.loading = true
		return a, a.loadJournal(entry.Date.AddDays(1))

	case msg.String() == "m":
		entry.Mood = entry.Mood%journal.MaxMood + 1
		a.loading = true
		return a, a.saveJournal(entry)

	case msg.String() == "w":
		entry.Water = (entry.Water + 1) % (journal.MaxWater + 1)
		a.loading = true
		return a, a.saveJournal(entry)
	}

	var cmd tea.Cmd
	a.journalView, cmd = a.journalView.Update(msg)
	return a, cmd
}

func (a *App) renderJournal() {
	out, err := journal.Render(a.journalEntry, a.theme, a.journalView.Width)
	if err != nil {
		a.logger.Debug("journal rendered as plain markdown", "err", err)
	}
	a.journalView.SetContent(out)
	a.journalView.GotoTop()
}

func (a *App) toggleTheme() {
	a.theme = styles.ToggleTheme(a.theme)
	styles.ApplyTheme(a.theme)
	if a.journalLoaded {
		a.renderJournal()
	}
	a.statusMsg = fmt.Sprintf("Theme: %s", a.theme)
	if a.opts.Settings == nil {
		return
	}
	if err := a.opts.Settings.Set(settings.KeyTheme, a.theme); err != nil {
		a.logger.Warn("failed to persist theme", "err", err)
		a.statusMsg = "Could not save theme"
	}
}

func (a *App) today() api.Date {
	return api.DateOf(a.ctrl.Now())
}
