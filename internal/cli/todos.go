package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

const textColumnWidth = 48

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

// loadTodos authorizes the client and fetches every todo of the user.
func (a *App) loadTodos(cmd *cobra.Command) ([]api.Todo, error) {
	if _, err := a.requireSession(); err != nil {
		return nil, err
	}
	todos, err := a.client.ListTodos(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	return todos, nil
}

// resolveTodo finds a todo by id or by an unambiguous id prefix.
func resolveTodo(todos []api.Todo, id string) (api.Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return api.Todo{}, errors.New("missing todo id")
	}
	var matches []api.Todo
	for _, t := range todos {
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return api.Todo{}, notFoundError{kind: "todo", id: id}
	case 1:
		return matches[0], nil
	default:
		return api.Todo{}, fmt.Errorf("todo id %q is ambiguous (%d matches)", id, len(matches))
	}
}

func newListCmd(app *App) *cobra.Command {
	var (
		filter   string
		category string
		sortBy   string
		page     int
		all      bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos with the saved filter, sort and page",
		Long: strings.TrimSpace(`
List todos the way the TUI shows them. Filter, category, sort and page
given as flags are saved and apply to later runs and to the TUI.

Filters: OPEN, TODAY, THIS_WEEK, DONE, ALL
Sort keys: CREATED_DESC, CREATED_ASC, DUE_ASC, DUE_DESC, STATUS,
           TEXT_ASC, TEXT_DESC, CATEGORY_ASC
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			store := ctrl.Store

			flags := cmd.Flags()
			if flags.Changed("filter") {
				f, ok := view.ParseStatusFilter(strings.ToUpper(strings.TrimSpace(filter)))
				if !ok {
					return fmt.Errorf("unknown filter %q", filter)
				}
				warn(cmd, store.SetFilter(f))
			}
			if flags.Changed("category") {
				warn(cmd, store.SetCategory(category))
			}
			if flags.Changed("sort") {
				k, ok := view.ParseSortKey(strings.ToUpper(strings.TrimSpace(sortBy)))
				if !ok {
					return fmt.Errorf("unknown sort key %q", sortBy)
				}
				warn(cmd, store.SetSort(k))
			}
			if flags.Changed("page") {
				warn(cmd, store.SetPage(page))
			}

			state := store.State()
			var items []api.Todo
			var derived view.Derived
			if all {
				items = ctrl.Sorter.Sort(view.Filter(todos, state.Filter, state.Category, app.now()), state.Sort)
				derived = view.Derived{Items: items, Page: 1, TotalPages: 1, TotalFiltered: len(items)}
			} else {
				derived = ctrl.Derive(todos)
				items = derived.Items
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			writeTodoTable(out, items, api.DateOf(app.now()))
			fmt.Fprintln(out, footer(derived, state))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Status filter")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category, or ALL")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "Sort key")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().BoolVar(&all, "all", false, "Show every matching todo instead of one page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func writeTodoTable(w io.Writer, todos []api.Todo, today api.Date) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No todos match.")
		return
	}
	for _, t := range todos {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}
		due := t.DueDisplay()
		if t.IsOverdue(today) {
			due += " !"
		}
		text := runewidth.Truncate(t.Text, textColumnWidth, "…")
		fmt.Fprintf(w, "%-8s %s %s  %-12s %s\n",
			shortID(t.ID), check,
			runewidth.FillRight(text, textColumnWidth),
			due, strings.TrimSpace(t.Category))
	}
}

func footer(d view.Derived, s view.State) string {
	category := s.Category
	if category == view.AllCategories {
		category = "All"
	}
	return fmt.Sprintf("Page %d of %d (%d todos) · filter: %s · category: %s · sort: %s",
		d.Page, d.TotalPages, d.TotalFiltered, s.Filter.Label(), category, s.Sort.Label())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newAddCmd(app *App) *cobra.Command {
	var due, category string

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("todo text cannot be empty")
			}
			today := api.DateOf(app.now())
			dueDate := today
			if strings.TrimSpace(due) != "" {
				d, err := api.ParseDateRelative(due, today)
				if err != nil {
					return err
				}
				dueDate = d
			}

			if _, err := app.requireSession(); err != nil {
				return err
			}
			todo, err := app.client.CreateTodo(cmd.Context(), text, &dueDate, strings.TrimSpace(category))
			if err != nil {
				return fmt.Errorf("failed to create todo: %w", err)
			}

			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			warn(cmd, ctrl.Store.SetPage(1))

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s (due %s)\n", shortID(todo.ID), todo.Text, todo.DueDisplay())
			return nil
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date: YYYY-MM-DD, today, tomorrow, +N (default today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a todo as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			t, err := resolveTodo(todos, args[0])
			if err != nil {
				return err
			}
			updated, err := app.client.SetDone(cmd.Context(), t.ID, !undo)
			if err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}
			state := "done"
			if !updated.Done {
				state = "open"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", shortID(updated.ID), state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark as open again")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var text, due, category string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change text, due date or category of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var patch api.TodoPatch
			if flags.Changed("text") {
				v := strings.TrimSpace(text)
				if v == "" {
					return errors.New("todo text cannot be empty")
				}
				patch.Text = &v
			}
			if flags.Changed("due") {
				today := api.DateOf(app.now())
				d := today
				if strings.TrimSpace(due) != "" {
					parsed, err := api.ParseDateRelative(due, today)
					if err != nil {
						return err
					}
					d = parsed
				}
				patch.DueDate = &d
			}
			if flags.Changed("category") {
				v := strings.TrimSpace(category)
				patch.Category = &v
			}
			if patch.IsEmpty() {
				return errors.New("nothing to change: use --text, --due or --category")
			}

			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			t, err := resolveTodo(todos, args[0])
			if err != nil {
				return err
			}
			updated, err := app.client.UpdateTodo(cmd.Context(), t.ID, patch)
			if err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s (due %s)\n", shortID(updated.ID), updated.Text, updated.DueDisplay())
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVar(&due, "due", "", "New due date; empty means today")
	cmd.Flags().StringVar(&category, "category", "", "New category; empty clears it")
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			t, err := resolveTodo(todos, args[0])
			if err != nil {
				return err
			}
			if !yes {
				p := newPrompter(cmd)
				fmt.Fprintf(p.out, "Delete %q? [y/N]: ", t.Text)
				answer, _ := p.readLine()
				if answer != "y" && answer != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}
			if err := app.client.DeleteTodo(cmd.Context(), t.ID); err != nil {
				return fmt.Errorf("failed to delete todo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(t.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			for _, c := range view.DistinctCategories(todos) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
