// Package journal holds the daily journal page: mood, water, gratitude,
// best tasks and free notes.
package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/hy4ri/todo-journal/internal/api"
)

const (
	GratitudeSlots = 3
	BestTaskSlots  = 4
	MaxWater       = 8
	MinMood        = 1
	MaxMood        = 5
	DefaultMood    = 3
)

// Mood is one step of the mood scale.
type Mood struct {
	Value int
	Emoji string
	Label string
}

// Moods is the mood scale from worst to best.
var Moods = []Mood{
	{1, "😢", "Bad"},
	{2, "😕", "Rather bad"},
	{3, "🙂", "Neutral"},
	{4, "😊", "Good"},
	{5, "😄", "Very good"},
}

// MoodOf returns the scale entry for v, or the neutral mood.
func MoodOf(v int) Mood {
	for _, m := range Moods {
		if m.Value == v {
			return m
		}
	}
	return Moods[DefaultMood-1]
}

// Empty returns the page shown for a day nothing was written on.
func Empty(date api.Date) api.JournalEntry {
	return api.JournalEntry{
		Date:      date,
		Gratitude: make([]string, GratitudeSlots),
		BestTasks: make([]string, BestTaskSlots),
		Mood:      DefaultMood,
	}
}

// Normalize pads or truncates the lists to their slot counts and moves mood
// and water into range. A mood of 0 means unset and becomes DefaultMood.
func Normalize(e api.JournalEntry) api.JournalEntry {
	e.Gratitude = fit(e.Gratitude, GratitudeSlots)
	e.BestTasks = fit(e.BestTasks, BestTaskSlots)
	if e.Mood == 0 {
		e.Mood = DefaultMood
	}
	e.Mood = min(max(e.Mood, MinMood), MaxMood)
	e.Water = min(max(e.Water, 0), MaxWater)
	return e
}

// Compact drops blank list entries; the service stores only what was written.
func Compact(e api.JournalEntry) api.JournalEntry {
	e = Normalize(e)
	e.Gratitude = nonBlank(e.Gratitude)
	e.BestTasks = nonBlank(e.BestTasks)
	return e
}

func fit(in []string, n int) []string {
	out := make([]string, n)
	copy(out, in)
	return out
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// Backend is the part of the API client the journal needs.
type Backend interface {
	GetJournalEntry(ctx context.Context, date api.Date) (*api.JournalEntry, error)
	SaveJournalEntry(ctx context.Context, entry api.JournalEntry) (*api.JournalEntry, error)
}

// Load fetches the page for date. Days without an entry yield Empty(date).
func Load(ctx context.Context, b Backend, date api.Date) (api.JournalEntry, error) {
	entry, err := b.GetJournalEntry(ctx, date)
	if err != nil {
		return Empty(date), err
	}
	if entry == nil {
		return Empty(date), nil
	}
	if entry.Date.IsZero() {
		entry.Date = date
	}
	return Normalize(*entry), nil
}

// Save stores the page and returns it as the service now has it.
func Save(ctx context.Context, b Backend, entry api.JournalEntry) (api.JournalEntry, error) {
	if entry.Date.IsZero() {
		return entry, fmt.Errorf("journal entry needs a date")
	}
	saved, err := b.SaveJournalEntry(ctx, Compact(entry))
	if err != nil {
		return entry, err
	}
	if saved == nil {
		return Normalize(entry), nil
	}
	return Normalize(*saved), nil
}

// Markdown renders the page as a markdown document.
func Markdown(e api.JournalEntry) string {
	e = Normalize(e)
	mood := MoodOf(e.Mood)

	var b strings.Builder
	fmt.Fprintf(&b, "# Journal %s\n\n", e.Date)
	fmt.Fprintf(&b, "**Mood:** %s %s (%d/%d)\n\n", mood.Emoji, mood.Label, e.Mood, MaxMood)
	fmt.Fprintf(&b, "**Water:** %s%s %d/%d\n\n",
		strings.Repeat("●", e.Water), strings.Repeat("○", MaxWater-e.Water), e.Water, MaxWater)

	writeList(&b, "Grateful for", e.Gratitude)
	writeList(&b, "Best tasks", e.BestTasks)

	b.WriteString("## Notes\n\n")
	if strings.TrimSpace(e.Notes) == "" {
		b.WriteString("_No notes._\n")
	} else {
		b.WriteString(e.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	written := 0
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
		written++
	}
	if written == 0 {
		b.WriteString("_Nothing yet._\n")
	}
	b.WriteString("\n")
}
