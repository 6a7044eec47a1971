// Package view turns the raw todo collection into the page the UI renders.
//
// Everything here is a pure function of the todos, the persisted view state
// and the current time, except Store, which owns the state and its
// persistence.
package view

import (
	"strings"
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
)

// StatusFilter selects todos by completion or by their reference date.
type StatusFilter string

const (
	FilterOpen     StatusFilter = "OPEN"
	FilterToday    StatusFilter = "TODAY"
	FilterThisWeek StatusFilter = "THIS_WEEK"
	FilterDone     StatusFilter = "DONE"
	FilterAll      StatusFilter = "ALL"
)

// AllCategories is the category filter value that disables category filtering.
const AllCategories = "ALL"

// weekWindowDays is the width of the rolling THIS_WEEK window on each side of today.
const weekWindowDays = 7

// StatusFilters lists the filters in the order the UI cycles through them.
var StatusFilters = []StatusFilter{FilterOpen, FilterToday, FilterThisWeek, FilterDone, FilterAll}

// ParseStatusFilter returns the filter named s. Unknown names report false.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	for _, f := range StatusFilters {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Label returns the human readable name of the filter.
func (f StatusFilter) Label() string {
	switch f {
	case FilterOpen:
		return "Open"
	case FilterToday:
		return "Today"
	case FilterThisWeek:
		return "This week"
	case FilterDone:
		return "Done"
	case FilterAll:
		return "All"
	default:
		return string(f)
	}
}

// Next returns the filter after f in StatusFilters, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	for i, candidate := range StatusFilters {
		if candidate == f {
			return StatusFilters[(i+1)%len(StatusFilters)]
		}
	}
	return FilterAll
}

// ReferenceDate is the day a todo is filed under for time based filters:
// its due date when set, otherwise the day it was created on, seen from loc.
func ReferenceDate(t api.Todo, loc *time.Location) api.Date {
	if due, ok := t.Due(); ok {
		return due
	}
	if loc == nil {
		loc = time.Local
	}
	return api.DateOf(t.CreatedAt.In(loc))
}

// Filter returns the todos matching both the status filter and the category
// filter, in input order. The input slice is not modified.
func Filter(todos []api.Todo, status StatusFilter, category string, now time.Time) []api.Todo {
	today := api.DateOf(now)
	out := make([]api.Todo, 0, len(todos))
	for _, t := range todos {
		if !matchesStatus(t, status, today, now.Location()) {
			continue
		}
		if !matchesCategory(t, category) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesStatus(t api.Todo, status StatusFilter, today api.Date, loc *time.Location) bool {
	switch status {
	case FilterOpen:
		return !t.Done
	case FilterDone:
		return t.Done
	case FilterToday:
		return ReferenceDate(t, loc) == today
	case FilterThisWeek:
		return withinWeek(ReferenceDate(t, loc), today)
	default:
		return true
	}
}

// withinWeek reports whether ref lies less than seven whole days from today
// in either direction. This is a rolling window, not a calendar week.
func withinWeek(ref, today api.Date) bool {
	days := int(ref.Time().Sub(today.Time()).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days < weekWindowDays
}

func matchesCategory(t api.Todo, category string) bool {
	if category == AllCategories {
		return true
	}
	return strings.TrimSpace(t.Category) == category
}
