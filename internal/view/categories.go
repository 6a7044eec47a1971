package view

import (
	"strings"
	"unicode/utf16"

	"github.com/hy4ri/todo-journal/internal/api"
)

// CategoryPalette is the number of distinct badge colours categories hash into.
const CategoryPalette = 6

// PresetCategories are offered as suggestions when creating a todo.
var PresetCategories = []string{"Arbeit", "Privat", "Haushalt", "Gesundheit", "Studium"}

// DistinctCategories returns every non-empty trimmed category of todos, once,
// in first-seen order. Pass the whole collection, not a filtered view, so
// that hidden categories stay selectable.
func DistinctCategories(todos []api.Todo) []string {
	seen := make(map[string]struct{}, len(todos))
	out := make([]string, 0)
	for _, t := range todos {
		cat := strings.TrimSpace(t.Category)
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

// CategoryColor maps a category to a palette slot in [0, CategoryPalette),
// or -1 for an empty category. The hash sums UTF-16 code units of the
// lower-cased name, so "Work" and "work" share a colour.
func CategoryColor(category string) int {
	if category == "" {
		return -1
	}
	hash := 0
	for _, u := range utf16.Encode([]rune(strings.ToLower(category))) {
		hash = (hash + int(u)) % 1000
	}
	return hash % CategoryPalette
}

// NextCategory returns the category filter after current in the cycle
// ALL, categories[0], categories[1], ..., ALL.
func NextCategory(current string, categories []string) string {
	if current == AllCategories {
		if len(categories) == 0 {
			return AllCategories
		}
		return categories[0]
	}
	for i, c := range categories {
		if c == current && i+1 < len(categories) {
			return categories[i+1]
		}
	}
	return AllCategories
}
