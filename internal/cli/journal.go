package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/settings"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Daily journal commands",
	}
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalSetCmd(app))
	return cmd
}

// journalDate parses an optional DATE argument relative to today.
func (a *App) journalDate(args []string) (api.Date, error) {
	today := api.DateOf(a.now())
	if len(args) == 0 {
		return today, nil
	}
	return api.ParseDateRelative(args[0], today)
}

// renderStyle picks the glamour style: plain text when not writing to a
// terminal, otherwise the saved theme or auto detection.
func (a *App) renderStyle(cmd *cobra.Command) string {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	if s, err := a.openSettings(); err == nil {
		if theme, ok, _ := s.Get(settings.KeyTheme); ok {
			return theme
		}
	}
	return ""
}

func (a *App) printJournal(cmd *cobra.Command, e api.JournalEntry) {
	width := 80
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	out, err := journal.Render(e, a.renderStyle(cmd), width)
	if err != nil {
		a.log().Debug("journal rendered as plain markdown", "err", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the journal page of a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := app.journalDate(args)
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}
			e, err := journal.Load(cmd.Context(), app.client, date)
			if err != nil {
				return fmt.Errorf("failed to load journal: %w", err)
			}
			app.printJournal(cmd, e)
			return nil
		},
	}
}

func newJournalSetCmd(app *App) *cobra.Command {
	var (
		mood      int
		water     int
		gratitude []string
		tasks     []string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "set [DATE]",
		Short: "Update the journal page of a day (default today)",
		Example: strings.TrimSpace(`
  todo-journal journal set --mood 4 --water 6
  todo-journal journal set yesterday --gratitude "Sonne" --gratitude "Kaffee"
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("mood") && (mood < journal.MinMood || mood > journal.MaxMood) {
				return fmt.Errorf("mood must be between %d and %d", journal.MinMood, journal.MaxMood)
			}
			if flags.Changed("water") && (water < 0 || water > journal.MaxWater) {
				return fmt.Errorf("water must be between 0 and %d", journal.MaxWater)
			}
			if len(gratitude) > journal.GratitudeSlots {
				return fmt.Errorf("at most %d gratitude entries", journal.GratitudeSlots)
			}
			if len(tasks) > journal.BestTaskSlots {
				return fmt.Errorf("at most %d best tasks", journal.BestTaskSlots)
			}

			date, err := app.journalDate(args)
			if err != nil {
				return err
			}
			if _, err := app.requireSession(); err != nil {
				return err
			}
			e, err := journal.Load(cmd.Context(), app.client, date)
			if err != nil {
				return fmt.Errorf("failed to load journal: %w", err)
			}

			if flags.Changed("mood") {
				e.Mood = mood
			}
			if flags.Changed("water") {
				e.Water = water
			}
			if flags.Changed("gratitude") {
				e.Gratitude = gratitude
			}
			if flags.Changed("task") {
				e.BestTasks = tasks
			}
			if flags.Changed("notes") {
				e.Notes = notes
			}

			saved, err := journal.Save(cmd.Context(), app.client, e)
			if err != nil {
				return fmt.Errorf("failed to save journal: %w", err)
			}
			app.printJournal(cmd, saved)
			return nil
		},
	}

	cmd.Flags().IntVar(&mood, "mood", journal.DefaultMood, "Mood from 1 (bad) to 5 (very good)")
	cmd.Flags().IntVar(&water, "water", 0, "Glasses of water")
	cmd.Flags().StringArrayVar(&gratitude, "gratitude", nil, "Something you are grateful for (repeatable)")
	cmd.Flags().StringArrayVar(&tasks, "task", nil, "One of the day's best tasks (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free notes (Markdown)")
	return cmd
}
