package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/hy4ri/todo-journal/internal/journal"
	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() Report {
	now := time.Date(2025, time.March, 10, 18, 30, 0, 0, time.UTC)
	yesterday := api.NewDate(2025, time.March, 9)
	entry := journal.Empty(api.DateOf(now))
	entry.Gratitude[0] = "Frühling"
	entry.Notes = "Lange Notiz über den Tag."

	return Report{
		Owner:       "Jörg",
		GeneratedAt: now,
		State:       view.DefaultState(),
		Todos: []api.Todo{
			{ID: "1", Text: "Überweisung prüfen", Category: "Arbeit", DueDate: &yesterday},
			{ID: "2", Text: strings.Repeat("sehr lang ", 30), Done: true},
		},
		Journal: &entry,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Report{State: view.DefaultState()}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.pdf")
	require.NoError(t, WriteFile(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "x.pdf"), sampleReport()))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "All", categoryLabel(view.AllCategories))
	assert.Equal(t, "All", categoryLabel(""))
	assert.Equal(t, "Privat", categoryLabel("Privat"))
}
