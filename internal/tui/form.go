package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
	"github.com/hy4ri/todo-journal/internal/view"
)

// FormField represents which field is currently focused in the form.
type FormField int

const (
	FormFieldText FormField = iota
	FormFieldDue
	FormFieldCategory
	FormFieldSubmit
)

const formFieldCount = 4

// TodoForm manages the state of the add/edit todo form.
type TodoForm struct {
	// Mode
	Mode   string // "add" or "edit"
	TodoID string // For edit mode

	TextInput     textinput.Model
	DueInput      textinput.Model
	CategoryInput textinput.Model

	FocusedField FormField
	today        api.Date
	err          string
}

// NewTodoForm creates a form for adding a todo. The due date starts at
// today; categories are offered as completions after the presets.
func NewTodoForm(today api.Date, categories []string) *TodoForm {
	textInput := textinput.New()
	textInput.Placeholder = "What needs doing?"
	textInput.Focus()
	textInput.CharLimit = 500
	textInput.Width = 50

	dueInput := textinput.New()
	dueInput.Placeholder = "YYYY-MM-DD, today, tomorrow, +3"
	dueInput.CharLimit = 20
	dueInput.Width = 50
	dueInput.SetValue(today.String())

	categoryInput := textinput.New()
	categoryInput.Placeholder = "Category (optional, tab completes)"
	categoryInput.CharLimit = 60
	categoryInput.Width = 50
	categoryInput.ShowSuggestions = true
	categoryInput.SetSuggestions(suggestions(categories))

	return &TodoForm{
		Mode:          "add",
		TextInput:     textInput,
		DueInput:      dueInput,
		CategoryInput: categoryInput,
		FocusedField:  FormFieldText,
		today:         today,
	}
}

// NewEditTodoForm creates a form pre-populated for editing todo.
func NewEditTodoForm(todo api.Todo, today api.Date, categories []string) *TodoForm {
	form := NewTodoForm(today, categories)
	form.Mode = "edit"
	form.TodoID = todo.ID

	form.TextInput.SetValue(todo.Text)
	form.DueInput.SetValue("")
	if due, ok := todo.Due(); ok {
		form.DueInput.SetValue(due.String())
	}
	form.CategoryInput.SetValue(strings.TrimSpace(todo.Category))
	return form
}

func suggestions(categories []string) []string {
	out := slices.Clone(view.PresetCategories)
	for _, c := range categories {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// SetWidth sets the form width for responsive layout.
func (f *TodoForm) SetWidth(width int) {
	inputWidth := min(max(width-10, 30), 60)
	f.TextInput.Width = inputWidth
	f.DueInput.Width = inputWidth
	f.CategoryInput.Width = inputWidth
}

// Update handles input for the form. Enter and Esc are handled by the parent.
func (f *TodoForm) Update(msg tea.Msg) (*TodoForm, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab":
			// Let the category input complete first.
			if f.FocusedField == FormFieldCategory && f.CategoryInput.CurrentSuggestion() != "" &&
				f.CategoryInput.CurrentSuggestion() != f.CategoryInput.Value() {
				break
			}
			f.nextField()
			return f, nil
		case "shift+tab":
			f.prevField()
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.FocusedField {
	case FormFieldText:
		f.TextInput, cmd = f.TextInput.Update(msg)
	case FormFieldDue:
		f.DueInput, cmd = f.DueInput.Update(msg)
	case FormFieldCategory:
		f.CategoryInput, cmd = f.CategoryInput.Update(msg)
	}
	return f, cmd
}

func (f *TodoForm) nextField() {
	f.blurCurrent()
	f.FocusedField = (f.FocusedField + 1) % formFieldCount
	f.focusCurrent()
}

func (f *TodoForm) prevField() {
	f.blurCurrent()
	f.FocusedField = (f.FocusedField - 1 + formFieldCount) % formFieldCount
	f.focusCurrent()
}

func (f *TodoForm) blurCurrent() {
	switch f.FocusedField {
	case FormFieldText:
		f.TextInput.Blur()
	case FormFieldDue:
		f.DueInput.Blur()
	case FormFieldCategory:
		f.CategoryInput.Blur()
	}
}

func (f *TodoForm) focusCurrent() {
	switch f.FocusedField {
	case FormFieldText:
		f.TextInput.Focus()
	case FormFieldDue:
		f.DueInput.Focus()
	case FormFieldCategory:
		f.CategoryInput.Focus()
	}
}

// Validate checks the form and records the first problem for View.
func (f *TodoForm) Validate() error {
	f.err = ""
	if strings.TrimSpace(f.TextInput.Value()) == "" {
		f.err = "Text cannot be empty"
		return fmt.Errorf("todo text cannot be empty")
	}
	if _, err := f.dueDate(); err != nil {
		f.err = "Unknown date: " + f.DueInput.Value()
		return err
	}
	return nil
}

// dueDate returns the entered due date. An empty field means today.
func (f *TodoForm) dueDate() (api.Date, error) {
	v := strings.TrimSpace(f.DueInput.Value())
	if v == "" {
		return f.today, nil
	}
	return api.ParseDateRelative(v, f.today)
}

// Values returns text, due date and category ready for the API.
func (f *TodoForm) Values() (string, api.Date, string, error) {
	if err := f.Validate(); err != nil {
		return "", api.Date{}, "", err
	}
	due, _ := f.dueDate()
	return strings.TrimSpace(f.TextInput.Value()), due, strings.TrimSpace(f.CategoryInput.Value()), nil
}

// ToPatch converts an edit form into a full update.
func (f *TodoForm) ToPatch() (api.TodoPatch, error) {
	text, due, category, err := f.Values()
	if err != nil {
		return api.TodoPatch{}, err
	}
	return api.TodoPatch{Text: &text, DueDate: &due, Category: &category}, nil
}

// View renders the form.
func (f *TodoForm) View() string {
	var b strings.Builder

	title := "Add Todo"
	if f.Mode == "edit" {
		title = "Edit Todo"
	}
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(f.renderField("Todo", f.TextInput.View(), FormFieldText))
	b.WriteString("\n")
	b.WriteString(f.renderField("Due Date", f.DueInput.View(), FormFieldDue))
	b.WriteString("\n")
	b.WriteString(f.renderField("Category", f.CategoryInput.View(), FormFieldCategory))
	b.WriteString("\n\n")

	submitStyle := styles.HelpDesc
	if f.FocusedField == FormFieldSubmit {
		submitStyle = styles.HelpKey
	}
	submitText := "[ Add ]"
	if f.Mode == "edit" {
		submitText = "[ Save Changes ]"
	}
	b.WriteString(submitStyle.Render(submitText))
	b.WriteString("\n\n")

	if f.err != "" {
		b.WriteString(styles.StatusBarError.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpDesc.Render("Tab: next field | Shift+Tab: previous | Enter: submit | Esc: cancel"))

	return b.String()
}

func (f *TodoForm) renderField(label, input string, field FormField) string {
	labelStyle := styles.InputLabel
	if f.FocusedField == field {
		labelStyle = labelStyle.Foreground(styles.Highlight)
	}
	return fmt.Sprintf("%s\n%s", labelStyle.Render(label), input)
}
