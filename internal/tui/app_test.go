package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
	"github.com/hy4ri/todo-journal/internal/view"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type memSlots struct {
	values map[string]string
	setErr error
}

func (m *memSlots) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memSlots) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

type fakeService struct {
	todos   []api.Todo
	listErr error
	nextID  int
	journal map[api.Date]api.JournalEntry
}

func (f *fakeService) ListTodos(ctx context.Context) ([]api.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Todo(nil), f.todos...), nil
}

func (f *fakeService) CreateTodo(ctx context.Context, text string, due *api.Date, category string) (*api.Todo, error) {
	f.nextID++
	t := api.Todo{ID: fmt.Sprintf("new-%d", f.nextID), Text: text, DueDate: due, Category: category, CreatedAt: testNow}
	f.todos = append(f.todos, t)
	return &t, nil
}

func (f *fakeService) UpdateTodo(ctx context.Context, id string, patch api.TodoPatch) (*api.Todo, error) {
	for i := range f.todos {
		if f.todos[i].ID != id {
			continue
		}
		if patch.Text != nil {
			f.todos[i].Text = *patch.Text
		}
		if patch.Done != nil {
			f.todos[i].Done = *patch.Done
		}
		if patch.Category != nil {
			f.todos[i].Category = *patch.Category
		}
		if patch.DueDate != nil {
			f.todos[i].DueDate = patch.DueDate
		}
		t := f.todos[i]
		return &t, nil
	}
	return nil, &api.APIError{StatusCode: 404, Message: "not found"}
}

func (f *fakeService) SetDone(ctx context.Context, id string, done bool) (*api.Todo, error) {
	return f.UpdateTodo(ctx, id, api.TodoPatch{Done: &done})
}

func (f *fakeService) DeleteTodo(ctx context.Context, id string) error {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return &api.APIError{StatusCode: 404, Message: "not found"}
}

func (f *fakeService) GetJournalEntry(ctx context.Context, date api.Date) (*api.JournalEntry, error) {
	e, ok := f.journal[date]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeService) SaveJournalEntry(ctx context.Context, entry api.JournalEntry) (*api.JournalEntry, error) {
	if f.journal == nil {
		f.journal = make(map[api.Date]api.JournalEntry)
	}
	f.journal[entry.Date] = entry
	return &entry, nil
}

func ptrDate(d api.Date) *api.Date { return &d }

func seedTodos() []api.Todo {
	today := api.DateOf(testNow)
	return []api.Todo{
		{ID: "a", Text: "Write report", Category: "Arbeit", DueDate: ptrDate(today), CreatedAt: testNow.Add(-time.Hour)},
		{ID: "b", Text: "Water plants", Category: "Haushalt", Done: true, CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: "c", Text: "Call mum", Category: "Privat", DueDate: ptrDate(today.AddDays(3)), CreatedAt: testNow.Add(-3 * time.Hour)},
	}
}

type harness struct {
	app      *App
	svc      *fakeService
	slots    *memSlots
	notified []string
	copied   []string
}

func newHarness(t *testing.T, todos []api.Todo) *harness {
	t.Helper()
	styles.DisableColor()

	h := &harness{
		svc:   &fakeService{todos: todos},
		slots: &memSlots{values: map[string]string{}},
	}
	store := view.Load(h.slots, nil)
	ctrl := view.NewController(store, nil)
	ctrl.SetClock(func() time.Time { return testNow })

	h.app = New(Options{
		Service:    h.svc,
		Controller: ctrl,
		Settings:   h.slots,
		Theme:      styles.ThemeDark,
		NotifyDue:  true,
		Notify: func(title, message string) error {
			h.notified = append(h.notified, message)
			return nil
		},
		Copy: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
	})
	h.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	h.run(h.app.loadTodos())
	return h
}

// send feeds msg to the app and runs whatever command comes back.
func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case todosLoadedMsg, todoCreatedMsg, todoUpdatedMsg, todoDeletedMsg, journalLoadedMsg, errMsg, statusMsg:
		h.send(msg)
	}
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.send(msg)
}

func (h *harness) visibleIDs() []string {
	var out []string
	for _, t := range h.app.derived.Items {
		out = append(out, t.ID)
	}
	return out
}

func TestApp_LoadsTodosNewestFirst(t *testing.T) {
	h := newHarness(t, seedTodos())

	got := strings.Join(h.visibleIDs(), ",")
	if got != "a,b,c" {
		t.Errorf("visible = %q, want %q", got, "a,b,c")
	}
	if !strings.Contains(h.app.View(), "Write report") {
		t.Error("view should list the loaded todo")
	}
}

func TestApp_CycleFilterPersists(t *testing.T) {
	h := newHarness(t, seedTodos())

	h.key("f")
	if got := h.app.ctrl.Store.State().Filter; got != view.FilterOpen {
		t.Fatalf("filter = %s, want OPEN", got)
	}
	if h.slots.values[view.KeyFilter] != string(view.FilterOpen) {
		t.Errorf("persisted filter = %q", h.slots.values[view.KeyFilter])
	}
	if got := strings.Join(h.visibleIDs(), ","); got != "a,c" {
		t.Errorf("visible = %q, want %q", got, "a,c")
	}

	// b has no due date and was created today, so TODAY keeps it although it is done.
	h.key("f")
	if got := strings.Join(h.visibleIDs(), ","); got != "a,b" {
		t.Errorf("TODAY visible = %q, want %q", got, "a,b")
	}
}

func TestApp_PersistFailureShowsStatus(t *testing.T) {
	h := newHarness(t, seedTodos())
	h.slots.setErr = errors.New("disk full")

	h.key("s")
	if h.app.ctrl.Store.State().Sort != view.SortCreatedAsc {
		t.Errorf("sort should change in memory even when saving fails")
	}
	if h.app.statusMsg != "Could not save view settings" {
		t.Errorf("statusMsg = %q", h.app.statusMsg)
	}
}

func TestApp_AddTodoJumpsToFirstPage(t *testing.T) {
	var todos []api.Todo
	for i := range 12 {
		todos = append(todos, api.Todo{ID: fmt.Sprintf("t%d", i), Text: "x", CreatedAt: testNow.Add(-time.Duration(i+1) * time.Hour)})
	}
	h := newHarness(t, todos)
	h.key("right")
	if h.app.derived.Page != 2 {
		t.Fatalf("page = %d, want 2", h.app.derived.Page)
	}

	h.key("a")
	if h.app.mode != ModeForm {
		t.Fatal("a should open the form")
	}
	h.key("Buy milk")
	h.key("enter")

	if h.app.mode != ModeList {
		t.Errorf("mode = %d, want list", h.app.mode)
	}
	if h.app.derived.Page != 1 {
		t.Errorf("page = %d, want 1", h.app.derived.Page)
	}
	first := h.app.derived.Items[0]
	if first.Text != "Buy milk" {
		t.Errorf("first todo = %q, want the new one", first.Text)
	}
	if due, ok := first.Due(); !ok || due != api.DateOf(testNow) {
		t.Errorf("due = %v, want today", first.DueDate)
	}
}

func TestApp_EmptyFormIsNotSubmitted(t *testing.T) {
	h := newHarness(t, seedTodos())

	h.key("a")
	h.key("enter")
	if h.app.mode != ModeForm {
		t.Error("form should stay open when the text is empty")
	}
	if len(h.svc.todos) != 3 {
		t.Errorf("no todo should be created, have %d", len(h.svc.todos))
	}
	h.key("esc")
	if h.app.mode != ModeList {
		t.Error("esc should close the form")
	}
}

func TestApp_ToggleDone(t *testing.T) {
	h := newHarness(t, seedTodos())

	h.key("f") // OPEN
	h.key("space")
	if !h.svc.todos[0].Done {
		t.Fatal("todo a should be done on the server")
	}
	if got := strings.Join(h.visibleIDs(), ","); got != "c" {
		t.Errorf("visible = %q, want %q", got, "c")
	}
}

func TestApp_DeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t, seedTodos())

	h.key("d")
	h.key("n")
	if len(h.svc.todos) != 3 {
		t.Fatal("n should cancel the delete")
	}

	h.key("d")
	if !strings.Contains(h.app.View(), "Delete todo?") {
		t.Error("confirm dialog should be shown")
	}
	before := h.app.todos
	h.key("y")
	if len(h.svc.todos) != 2 {
		t.Fatalf("server has %d todos, want 2", len(h.svc.todos))
	}
	if got := strings.Join(h.visibleIDs(), ","); got != "b,c" {
		t.Errorf("visible = %q, want %q", got, "b,c")
	}
	if got := todoIDs(before); got != "a,b,c" {
		t.Errorf("previous snapshot changed to %q", got)
	}
}

func TestApp_UpdateReplacesSnapshot(t *testing.T) {
	h := newHarness(t, seedTodos())

	before := h.app.todos
	h.key("space")
	if !h.app.todos[0].Done {
		t.Fatal("todo a should be done")
	}
	if before[0].Done {
		t.Error("previous snapshot should keep todo a open")
	}
}

func todoIDs(todos []api.Todo) string {
	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}
	return strings.Join(ids, ",")
}

func TestApp_LoadErrorKeepsTodos(t *testing.T) {
	h := newHarness(t, seedTodos())
	h.svc.listErr = errors.New("connection refused")

	h.key("r")
	if h.app.err == nil {
		t.Fatal("error should be shown")
	}
	if len(h.app.todos) != 3 {
		t.Errorf("todos = %d, want the previous 3", len(h.app.todos))
	}
}

func TestApp_CopyAndTheme(t *testing.T) {
	h := newHarness(t, seedTodos())

	h.key("y")
	if len(h.copied) != 1 || h.copied[0] != "Write report" {
		t.Errorf("copied = %v", h.copied)
	}

	h.key("t")
	if h.app.theme != styles.ThemeLight {
		t.Errorf("theme = %q, want light", h.app.theme)
	}
	if h.slots.values[settings.KeyTheme] != styles.ThemeLight {
		t.Errorf("theme not saved: %v", h.slots.values)
	}
}

func TestApp_NotifiesDueTodayOnce(t *testing.T) {
	h := newHarness(t, seedTodos())
	if len(h.notified) != 1 || h.notified[0] != "Write report" {
		t.Fatalf("notified = %v", h.notified)
	}

	h.run(h.app.notifyDue())
	if len(h.notified) != 1 {
		t.Errorf("should not notify twice, got %v", h.notified)
	}
}

func TestApp_JournalMood(t *testing.T) {
	h := newHarness(t, nil)

	h.key("J")
	if h.app.mode != ModeJournal || !h.app.journalLoaded {
		t.Fatal("J should open the journal")
	}
	if h.app.journalEntry.Mood != 3 {
		t.Errorf("mood = %d, want the default 3", h.app.journalEntry.Mood)
	}

	h.key("m")
	saved := h.svc.journal[api.DateOf(testNow)]
	if saved.Mood != 4 {
		t.Errorf("saved mood = %d, want 4", saved.Mood)
	}

	h.key("esc")
	if h.app.mode != ModeList {
		t.Error("esc should leave the journal")
	}
}
