package view

import (
	"slices"
	"testing"

	"github.com/hy4ri/todo-journal/internal/api"
	"github.com/stretchr/testify/assert"
)

func TestDistinctCategories(t *testing.T) {
	todos := []api.Todo{
		{Category: " Arbeit"},
		{Category: "Privat"},
		{Category: ""},
		{Category: "Arbeit "},
		{Category: "   "},
		{Category: "arbeit"},
	}
	assert.Equal(t, []string{"Arbeit", "Privat", "arbeit"}, DistinctCategories(todos))
	assert.NotNil(t, DistinctCategories(nil))
}

func TestCategoryColor(t *testing.T) {
	assert.Equal(t, -1, CategoryColor(""))
	assert.Equal(t, 97%CategoryPalette, CategoryColor("a"))
	assert.Equal(t, (97+98)%CategoryPalette, CategoryColor("ab"))
	assert.Equal(t, CategoryColor("arbeit"), CategoryColor("Arbeit"))

	names := append(slices.Clone(PresetCategories), "Öffentlich", "日本", "🎉 Party")
	for _, c := range names {
		got := CategoryColor(c)
		assert.GreaterOrEqual(t, got, 0, c)
		assert.Less(t, got, CategoryPalette, c)
	}
}

func TestNextCategory(t *testing.T) {
	cats := []string{"Arbeit", "Privat"}

	cur := AllCategories
	var visited []string
	for range 3 {
		cur = NextCategory(cur, cats)
		visited = append(visited, cur)
	}
	assert.Equal(t, []string{"Arbeit", "Privat", AllCategories}, visited)

	assert.Equal(t, AllCategories, NextCategory(AllCategories, nil))
	assert.Equal(t, AllCategories, NextCategory("Verschwunden", cats))
}
