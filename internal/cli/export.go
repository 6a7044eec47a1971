package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/report"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/hy4ri/todo-journal/internal/tui/styles"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		out         string
		all         bool
		withJournal bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current list view to a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return errors.New("missing --out")
			}
			session, err := app.requireSession()
			if err != nil {
				return err
			}
			todos, err := app.loadTodos(cmd)
			if err != nil {
				return err
			}
			ctrl, err := app.controller()
			if err != nil {
				return err
			}

			now := app.now()
			state := ctrl.Store.State()
			items := ctrl.Derive(todos).Items
			if all {
				items = ctrl.Sorter.Sort(view.Filter(todos, state.Filter, state.Category, now), state.Sort)
			}

			r := report.Report{
				Owner:       session.User.DisplayName(),
				GeneratedAt: now,
				State:       state,
				Todos:       items,
			}
			if withJournal {
				e, err := journal.Load(cmd.Context(), app.client, api.DateOf(now))
				if err != nil {
					return fmt.Errorf("failed to load journal: %w", err)
				}
				r.Journal = &e
			}

			if err := report.WriteFile(out, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d todos to %s\n", len(items), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PDF file")
	cmd.Flags().BoolVar(&all, "all", false, "Export every matching todo instead of the current page")
	cmd.Flags().BoolVar(&withJournal, "journal", false, "Append today's journal page")
	return cmd
}

const themeAuto = "auto"

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|auto]",
		Short:     "Show or set the colour theme",
		Long:      "Show or set the colour theme. auto forgets the saved theme and detects it from the terminal.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{styles.ThemeDark, styles.ThemeLight, themeAuto},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSettings()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				theme, ok, err := s.Get(settings.KeyTheme)
				if err != nil {
					return err
				}
				if !ok {
					theme = themeAuto
				}
				fmt.Fprintln(cmd.OutOrStdout(), theme)
				return nil
			}

			theme := strings.ToLower(strings.TrimSpace(args[0]))
			if theme == themeAuto {
				if err := s.Delete(settings.KeyTheme); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Theme: auto")
				return nil
			}
			if theme != styles.ThemeDark && theme != styles.ThemeLight {
				return fmt.Errorf("unknown theme %q: use dark, light or auto", args[0])
			}
			if err := s.Set(settings.KeyTheme, theme); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "todo-journal version %s\n", Version)
		},
	}
}
