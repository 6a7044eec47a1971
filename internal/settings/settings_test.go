package settings

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hy4ri/todo-journal/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestGetSetDelete(t *testing.T) {
	s, _ := openTemp(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyTheme, "dark"))
	require.NoError(t, s.Set(KeyTheme, "light"))
	v, ok, err := s.Get(KeyTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, s.Set("empty", ""))
	v, ok, err = s.Get("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	require.NoError(t, s.Delete(KeyTheme))
	require.NoError(t, s.Delete(KeyTheme))
	_, ok, err = s.Get(KeyTheme)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestValuesSurviveReopen(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Set(view.KeyPage, "4"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(view.KeyPage)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", v)
}

func TestBacksViewState(t *testing.T) {
	s, _ := openTemp(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := view.Load(s, logger)
	require.NoError(t, store.SetFilter(view.FilterDone))
	require.NoError(t, store.SetCategory("Haushalt"))
	require.NoError(t, store.SetPage(3))

	require.NoError(t, s.Set(view.KeySort, "NOT_A_KEY"))

	restored := view.Load(s, logger)
	assert.Equal(t, view.State{
		Filter:   view.FilterDone,
		Category: "Haushalt",
		Sort:     view.SortCreatedDesc,
		Page:     3,
	}, restored.State())
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))

	dsn := sqliteDSN("/tmp/state.db")
	assert.True(t, strings.HasPrefix(dsn, "file:///tmp/state.db?"), dsn)
	assert.Contains(t, dsn, "busy_timeout")
	assert.Contains(t, dsn, "mode=rwc")
}
