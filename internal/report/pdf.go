// Package report exports the todo list view as a PDF document.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/view"
)

// Report is what goes into one PDF.
type Report struct {
	Owner       string
	GeneratedAt time.Time
	State       view.State
	// Todos are printed in the given order.
	Todos []api.Todo
	// Journal is appended when set.
	Journal *api.JournalEntry
}

// Write renders r as PDF into w.
func Write(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Todo report"), false)
	if r.Owner != "" {
		pdf.SetAuthor(tr(r.Owner), false)
	}
	if !r.GeneratedAt.IsZero() {
		pdf.SetCreationDate(r.GeneratedAt)
	}
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := "Todos"
	if r.Owner != "" {
		title += " of " + r.Owner
	}
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Filter: %s   Category: %s   Sort: %s",
		r.State.Filter.Label(), categoryLabel(r.State.Category), r.State.Sort.Label())))
	pdf.Ln(6)
	if !r.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	writeTodoTable(pdf, tr, r.Todos, today(r.GeneratedAt))

	if r.Journal != nil {
		writeJournal(pdf, tr, *r.Journal)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile renders r into the file at path.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTodoTable(pdf *fpdf.Fpdf, tr func(string) string, todos []api.Todo, now api.Date) {
	widths := []float64{10, 100, 40, 30}
	headers := []string{"", "Todo", "Category", "Due"}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(todos) == 0 {
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 7, "No todos.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
		return
	}
	for _, t := range todos {
		status := "[ ]"
		if t.Done {
			status = "[x]"
		}
		pdf.SetTextColor(0, 0, 0)
		if t.IsOverdue(now) {
			pdf.SetTextColor(190, 30, 30)
		}
		pdf.CellFormat(widths[0], 7, status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, tr(clip(pdf, tr, t.Text, widths[1]-2)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, tr(clip(pdf, tr, strings.TrimSpace(t.Category), widths[2]-2)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, t.DueDisplay(), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

func writeJournal(pdf *fpdf.Fpdf, tr func(string) string, e api.JournalEntry) {
	e = journal.Normalize(e)
	mood := journal.MoodOf(e.Mood)

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Journal "+e.Date.String())
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Mood: %s (%d/%d)   Water: %d/%d glasses",
		mood.Label, e.Mood, journal.MaxMood, e.Water, journal.MaxWater)))
	pdf.Ln(8)

	section := func(title string, items []string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, title)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 11)
		for i, item := range items {
			if strings.TrimSpace(item) == "" {
				continue
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, item)), "", "", false)
		}
		pdf.Ln(2)
	}
	section("Grateful for", e.Gratitude)
	section("Best tasks", e.BestTasks)

	if strings.TrimSpace(e.Notes) != "" {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 6, "Notes")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(e.Notes), "", "", false)
	}
}

// clip shortens s with an ellipsis until it fits into width millimetres.
func clip(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if pdf.GetStringWidth(tr(s)) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if pdf.GetStringWidth(tr(candidate)) <= width {
			return candidate
		}
	}
	return ""
}

func categoryLabel(c string) string {
	if c == "" || c == view.AllCategories {
		return "All"
	}
	return c
}

func today(t time.Time) api.Date {
	if t.IsZero() {
		return api.Today()
	}
	return api.DateOf(t)
}
