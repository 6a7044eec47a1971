package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTodos() []api.Todo {
	return []api.Todo{
		{ID: "A", Text: "A", Category: "Work", DueDate: due(api.NewDate(2024, time.January, 10)), CreatedAt: refNow.Add(-time.Hour)},
		{ID: "B", Text: "B", Done: true, CreatedAt: refNow},
	}
}

func numberedTodos(n int) []api.Todo {
	out := make([]api.Todo, n)
	for i := range out {
		out[i] = api.Todo{
			ID:        fmt.Sprintf("t%02d", i),
			Text:      fmt.Sprintf("Todo %02d", i),
			CreatedAt: refNow.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestComputeScenario(t *testing.T) {
	sorter := NewSorter(DefaultLanguage)
	todos := scenarioTodos()

	state := DefaultState()
	state.Sort = SortStatus
	assert.Equal(t, []string{"A", "B"}, ids(Compute(todos, state, refNow, sorter, PageSize).Items))

	state = DefaultState()
	state.Filter = FilterDone
	assert.Equal(t, []string{"B"}, ids(Compute(todos, state, refNow, sorter, PageSize).Items))

	state = DefaultState()
	state.Filter = FilterOpen
	state.Category = "Work"
	derived := Compute(todos, state, refNow, sorter, PageSize)
	assert.Equal(t, []string{"A"}, ids(derived.Items))
	assert.Equal(t, 1, derived.TotalFiltered)
	assert.Equal(t, []string{"Work"}, derived.Categories)
}

func TestComputeClampsPage(t *testing.T) {
	todos := numberedTodos(17)
	state := DefaultState()
	state.Sort = SortCreatedAsc
	state.Page = 10

	derived := Compute(todos, state, refNow, nil, PageSize)

	assert.Equal(t, 3, derived.Page)
	assert.Equal(t, 3, derived.TotalPages)
	assert.Equal(t, 17, derived.TotalFiltered)
	assert.Equal(t, []string{"t16"}, ids(derived.Items))
	assert.Equal(t, 10, state.Page)
}

func TestComputeIsIdempotent(t *testing.T) {
	todos := append(numberedTodos(11), mixedTodos()...)
	sorter := NewSorter(DefaultLanguage)

	for _, f := range StatusFilters {
		for _, k := range SortKeys {
			state := State{Filter: f, Category: AllCategories, Sort: k, Page: 2}
			first := Compute(todos, state, refNow, sorter, PageSize)
			second := Compute(todos, state, refNow, sorter, PageSize)
			assert.Equal(t, first, second, "%s/%s", f, k)
		}
	}
}

func TestComputeCategoriesIgnoreFilters(t *testing.T) {
	state := DefaultState()
	state.Filter = FilterDone
	state.Category = "Haushalt"

	derived := Compute(mixedTodos(), state, refNow, nil, PageSize)
	assert.Equal(t, []string{"done-old"}, ids(derived.Items))
	assert.Equal(t, []string{"Arbeit", "Haushalt", "Privat", "Gesundheit"}, derived.Categories)
}

func TestComputeEmptyCategoryMeansAll(t *testing.T) {
	state := DefaultState()
	state.Category = ""
	derived := Compute(mixedTodos(), state, refNow, nil, PageSize)
	assert.Equal(t, 5, derived.TotalFiltered)
}

func TestControllerPaging(t *testing.T) {
	slots := newMemSlots(nil)
	ctrl := NewController(Load(slots, quietLogger()), NewSorter(DefaultLanguage))
	ctrl.SetClock(func() time.Time { return refNow })
	todos := numberedTodos(17)

	require.NoError(t, ctrl.NextPage(todos))
	require.NoError(t, ctrl.NextPage(todos))
	require.NoError(t, ctrl.NextPage(todos))
	assert.Equal(t, 3, ctrl.Derive(todos).Page)
	assert.Equal(t, "3", slots.values[KeyPage])

	// Fewer todos shrink the effective page, and paging back starts from there.
	few := todos[:9]
	assert.Equal(t, 2, ctrl.Derive(few).Page)
	require.NoError(t, ctrl.PrevPage(few))
	assert.Equal(t, 1, ctrl.Derive(few).Page)
}

func TestControllerCycles(t *testing.T) {
	slots := newMemSlots(map[string]string{KeyPage: "2"})
	ctrl := NewController(Load(slots, quietLogger()), nil)
	ctrl.SetClock(nil)
	todos := mixedTodos()

	require.NoError(t, ctrl.CycleFilter())
	assert.Equal(t, FilterOpen, ctrl.Store.State().Filter)

	require.NoError(t, ctrl.CycleSort())
	assert.Equal(t, SortCreatedAsc, ctrl.Store.State().Sort)

	require.NoError(t, ctrl.CycleCategory(todos))
	assert.Equal(t, "Arbeit", ctrl.Store.State().Category)
	require.NoError(t, ctrl.CycleCategory(todos))
	assert.Equal(t, "Haushalt", ctrl.Store.State().Category)

	assert.Equal(t, 1, ctrl.Store.State().Page)
	assert.False(t, ctrl.Now().IsZero())
}
