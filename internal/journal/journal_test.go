package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = api.NewDate(2025, time.March, 10)

type fakeBackend struct {
	stored  *api.JournalEntry
	getErr  error
	saved   []api.JournalEntry
	saveErr error
}

func (f *fakeBackend) GetJournalEntry(_ context.Context, date api.Date) (*api.JournalEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil || f.stored.Date != date {
		return nil, nil
	}
	e := *f.stored
	return &e, nil
}

func (f *fakeBackend) SaveJournalEntry(_ context.Context, entry api.JournalEntry) (*api.JournalEntry, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, entry)
	f.stored = &entry
	return &entry, nil
}

func TestEmpty(t *testing.T) {
	e := Empty(day)
	assert.Equal(t, day, e.Date)
	assert.Len(t, e.Gratitude, GratitudeSlots)
	assert.Len(t, e.BestTasks, BestTaskSlots)
	assert.Equal(t, DefaultMood, e.Mood)
	assert.Zero(t, e.Water)
	assert.Empty(t, e.Notes)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        api.JournalEntry
		mood      int
		water     int
		gratitude []string
	}{
		{"unset mood", api.JournalEntry{}, DefaultMood, 0, []string{"", "", ""}},
		{"mood too high", api.JournalEntry{Mood: 9}, MaxMood, 0, []string{"", "", ""}},
		{"mood negative", api.JournalEntry{Mood: -1}, MinMood, 0, []string{"", "", ""}},
		{"water capped", api.JournalEntry{Mood: 4, Water: 12}, 4, MaxWater, []string{"", "", ""}},
		{"water negative", api.JournalEntry{Mood: 2, Water: -3}, 2, 0, []string{"", "", ""}},
		{"lists padded", api.JournalEntry{Gratitude: []string{"Sonne"}}, DefaultMood, 0, []string{"Sonne", "", ""}},
		{"lists truncated", api.JournalEntry{Gratitude: []string{"a", "b", "c", "d"}}, DefaultMood, 0, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.mood, got.Mood)
			assert.Equal(t, tt.water, got.Water)
			assert.Equal(t, tt.gratitude, got.Gratitude)
			assert.Len(t, got.BestTasks, BestTaskSlots)
		})
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	in := api.JournalEntry{Gratitude: []string{"a", "b", "c"}}
	out := Normalize(in)
	out.Gratitude[0] = "changed"
	assert.Equal(t, "a", in.Gratitude[0])
}

func TestLoad(t *testing.T) {
	b := &fakeBackend{}
	e, err := Load(context.Background(), b, day)
	require.NoError(t, err)
	assert.Equal(t, Empty(day), e)

	b.stored = &api.JournalEntry{Date: day, Gratitude: []string{"Kaffee"}, Water: 5}
	e, err = Load(context.Background(), b, day)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kaffee", "", ""}, e.Gratitude)
	assert.Equal(t, 5, e.Water)
	assert.Equal(t, DefaultMood, e.Mood)

	b.getErr = errors.New("offline")
	e, err = Load(context.Background(), b, day)
	assert.Error(t, err)
	assert.Equal(t, Empty(day), e)
}

func TestSaveCompactsLists(t *testing.T) {
	b := &fakeBackend{}
	entry := Empty(day)
	entry.Gratitude[1] = "Familie"
	entry.BestTasks[0] = "  "
	entry.BestTasks[3] = "Sport"
	entry.Mood = 5
	entry.Water = 3

	saved, err := Save(context.Background(), b, entry)
	require.NoError(t, err)
	require.Len(t, b.saved, 1)
	assert.Equal(t, []string{"Familie"}, b.saved[0].Gratitude)
	assert.Equal(t, []string{"Sport"}, b.saved[0].BestTasks)

	assert.Equal(t, []string{"Familie", "", ""}, saved.Gratitude)
	assert.Equal(t, 5, saved.Mood)
	assert.Equal(t, 3, saved.Water)
}

func TestSaveRequiresDate(t *testing.T) {
	_, err := Save(context.Background(), &fakeBackend{}, api.JournalEntry{})
	assert.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	e := Empty(day)
	e.Mood = 4
	e.Water = 2
	e.BestTasks[2] = "Steuererklärung"
	e.Notes = "Ein guter Tag."

	md := Markdown(e)
	assert.Contains(t, md, "# Journal 2025-03-10")
	assert.Contains(t, md, "😊 Good (4/5)")
	assert.Contains(t, md, "●●○○○○○○ 2/8")
	assert.Contains(t, md, "3. Steuererklärung")
	assert.Contains(t, md, "_Nothing yet._")
	assert.Contains(t, md, "Ein guter Tag.")
}

func TestRenderPlain(t *testing.T) {
	e := Empty(day)
	e.Notes = "Notiz"
	out, err := Render(e, "notty", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Notiz")
	assert.Contains(t, out, "2025-03-10")
}

func TestMoodOf(t *testing.T) {
	assert.Equal(t, "Very good", MoodOf(5).Label)
	assert.Equal(t, DefaultMood, MoodOf(42).Value)
}
