// Package tui provides the terminal user interface for the todo list and journal.
package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
	"github.com/hy4ri/todo-journal/internal/view"
)

// Mode is what the screen is currently doing.
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeConfirmDelete
	ModeJournal
)

// TodoService is the part of the API client the TUI uses.
type TodoService interface {
	ListTodos(ctx context.Context) ([]api.Todo, error)
	CreateTodo(ctx context.Context, text string, dueDate *api.Date, category string) (*api.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch api.TodoPatch) (*api.Todo, error)
	SetDone(ctx context.Context, id string, done bool) (*api.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	journal.Backend
}

// Options are the dependencies of the App.
type Options struct {
	Service    TodoService
	Controller *view.Controller
	// Settings keeps the theme between runs; may be nil.
	Settings view.Slots
	Logger   *slog.Logger

	User      string
	VimMode   bool
	NotifyDue bool
	// Theme is used when Settings holds none. Empty asks the terminal.
	Theme string

	// Notify and Copy default to desktop notifications and the system clipboard.
	Notify func(title, message string) error
	Copy   func(text string) error
}

// App is the main Bubble Tea model for the application.
type App struct {
	opts   Options
	ctrl   *view.Controller
	logger *slog.Logger

	// Data
	todos   []api.Todo
	derived view.Derived

	// List state
	mode   Mode
	cursor int

	form          *TodoForm
	pendingDelete *api.Todo

	// Journal state
	journalEntry  api.JournalEntry
	journalLoaded bool
	journalView   viewport.Model

	// UI state
	loading   bool
	err       error
	statusMsg string
	width     int
	height    int
	showHelp  bool
	theme     string
	notified  map[string]bool

	// Components
	spinner   spinner.Model
	paginator paginator.Model
	help      help.Model
	keymap    Keymap
}

// New creates a new App.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Notify == nil {
		opts.Notify = func(title, message string) error { return beeep.Notify(title, message, "") }
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = styles.PagerActive
	p.InactiveDot = styles.PagerInactive

	a := &App{
		opts:      opts,
		ctrl:      opts.Controller,
		logger:    logger,
		loading:   true,
		notified:  make(map[string]bool),
		spinner:   s,
		paginator: p,
		help:      help.New(),
		keymap:    DefaultKeymap(opts.VimMode),
	}
	a.theme = a.initialTheme()
	styles.ApplyTheme(a.theme)
	a.recompute()
	return a
}

func (a *App) initialTheme() string {
	if a.opts.Settings != nil {
		if v, ok, err := a.opts.Settings.Get(settings.KeyTheme); err == nil && ok {
			if v == styles.ThemeDark || v == styles.ThemeLight {
				return v
			}
		}
	}
	if a.opts.Theme != "" {
		return a.opts.Theme
	}
	return styles.DetectTheme()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick, a.loadTodos()}
	if a.opts.NotifyDue {
		cmds = append(cmds, checkDueCmd())
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// recompute derives the visible page from the todos and the view state and
// keeps the cursor and pager in range.
func (a *App) recompute() {
	a.derived = a.ctrl.Derive(a.todos)
	a.cursor = min(a.cursor, len(a.derived.Items)-1)
	a.cursor = max(a.cursor, 0)
	a.paginator.SetTotalPages(a.derived.TotalPages)
	a.paginator.PerPage = 1
	a.paginator.Page = a.derived.Page - 1
}

// selected returns the todo under the cursor.
func (a *App) selected() (api.Todo, bool) {
	if a.cursor < 0 || a.cursor >= len(a.derived.Items) {
		return api.Todo{}, false
	}
	return a.derived.Items[a.cursor], true
}

// persistErr reports a view state write failure without interrupting the user.
func (a *App) persistErr(err error) {
	if err == nil {
		return
	}
	a.logger.Warn("failed to persist view state", "err", err)
	a.statusMsg = "Could not save view settings"
}

// Message types
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type todosLoadedMsg struct{ todos []api.Todo }
type todoCreatedMsg struct{ todo *api.Todo }
type todoUpdatedMsg struct{ todo *api.Todo }
type todoDeletedMsg struct{ id string }
type journalLoadedMsg struct {
	entry api.JournalEntry
	err   error
}
