package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/view"
)

func (a *App) loadTodos() tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		todos, err := svc.ListTodos(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return todosLoadedMsg{todos: todos}
	}
}

func (a *App) createTodo(text string, due api.Date, category string) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		todo, err := svc.CreateTodo(context.Background(), text, &due, category)
		if err != nil {
			return errMsg{err}
		}
		return todoCreatedMsg{todo: todo}
	}
}

func (a *App) updateTodo(id string, patch api.TodoPatch) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		todo, err := svc.UpdateTodo(context.Background(), id, patch)
		if err != nil {
			return errMsg{err}
		}
		return todoUpdatedMsg{todo: todo}
	}
}

func (a *App) toggleTodo(t api.Todo) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		todo, err := svc.SetDone(context.Background(), t.ID, !t.Done)
		if err != nil {
			return errMsg{err}
		}
		return todoUpdatedMsg{todo: todo}
	}
}

func (a *App) deleteTodo(id string) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		if err := svc.DeleteTodo(context.Background(), id); err != nil {
			return errMsg{err}
		}
		return todoDeletedMsg{id: id}
	}
}

func (a *App) copyTodo(t api.Todo) tea.Cmd {
	copyFn := a.opts.Copy
	return func() tea.Msg {
		if err := copyFn(t.Text); err != nil {
			return errMsg{err}
		}
		return statusMsg{msg: "Copied: " + t.Text}
	}
}

func (a *App) loadJournal(date api.Date) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		entry, err := journal.Load(context.Background(), svc, date)
		return journalLoadedMsg{entry: entry, err: err}
	}
}

func (a *App) saveJournal(entry api.JournalEntry) tea.Cmd {
	svc := a.opts.Service
	return func() tea.Msg {
		saved, err := journal.Save(context.Background(), svc, entry)
		return journalLoadedMsg{entry: saved, err: err}
	}
}

type checkDueMsg time.Time

func checkDueCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return checkDueMsg(t)
	})
}

// notifyDue sends one desktop notification per open todo whose reference
// date is today.
func (a *App) notifyDue() tea.Cmd {
	now := a.ctrl.Now()
	today := api.DateOf(now)
	var cmds []tea.Cmd
	for _, t := range a.todos {
		if t.Done || a.notified[t.ID] || view.ReferenceDate(t, now.Location()) != today {
			continue
		}
		a.notified[t.ID] = true

		title := "Due today"
		if t.Category != "" {
			title += " · " + t.Category
		}
		text := t.Text
		notify := a.opts.Notify
		logger := a.logger
		cmds = append(cmds, func() tea.Msg {
			if err := notify(title, text); err != nil {
				logger.Warn("failed to send notification", "err", err)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}
