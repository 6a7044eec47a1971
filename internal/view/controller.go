package view

import (
	"time"

	"github.com/hy4ri/todo-journal/internal/api"
)

// Derived is everything the list screen renders for one state.
type Derived struct {
	Items         []api.Todo
	Page          int
	TotalPages    int
	TotalFiltered int
	// Categories are the distinct categories of all todos, not only the
	// filtered ones, so the category selector never hides an option.
	Categories []string
}

// Compute runs filter, sort and paginate for state. It has no side effects;
// in particular an out of range state.Page is clamped in the result only.
func Compute(todos []api.Todo, state State, now time.Time, sorter *Sorter, pageSize int) Derived {
	if sorter == nil {
		sorter = NewSorter(DefaultLanguage)
	}
	category := normalizeCategory(state.Category)

	filtered := Filter(todos, state.Filter, category, now)
	sorted := sorter.Sort(filtered, state.Sort)
	page := Paginate(sorted, state.Page, pageSize)

	return Derived{
		Items:         page.Items,
		Page:          page.Number,
		TotalPages:    page.TotalPages,
		TotalFiltered: len(filtered),
		Categories:    DistinctCategories(todos),
	}
}

// Controller binds a Store to a Sorter and a clock.
type Controller struct {
	Store    *Store
	Sorter   *Sorter
	PageSize int

	now func() time.Time
}

// NewController returns a Controller deriving pages of PageSize todos.
func NewController(store *Store, sorter *Sorter) *Controller {
	return &Controller{
		Store:    store,
		Sorter:   sorter,
		PageSize: PageSize,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to decide what "today" is.
func (c *Controller) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	c.now = now
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// Derive computes the visible page for the store's current state.
func (c *Controller) Derive(todos []api.Todo) Derived {
	return Compute(todos, c.Store.State(), c.now(), c.Sorter, c.PageSize)
}

// NextPage moves forward one page relative to what Derive would show.
func (c *Controller) NextPage(todos []api.Todo) error {
	return c.Store.NextPage(c.Derive(todos).TotalPages)
}

// PrevPage moves back one page relative to what Derive would show.
func (c *Controller) PrevPage(todos []api.Todo) error {
	return c.Store.PrevPage(c.Derive(todos).TotalPages)
}

// CycleFilter selects the next status filter.
func (c *Controller) CycleFilter() error {
	return c.Store.SetFilter(c.Store.State().Filter.Next())
}

// CycleSort selects the next sort key.
func (c *Controller) CycleSort() error {
	return c.Store.SetSort(c.Store.State().Sort.Next())
}

// CycleCategory selects the next category of todos, wrapping through
// AllCategories.
func (c *Controller) CycleCategory(todos []api.Todo) error {
	return c.Store.SetCategory(NextCategory(c.Store.State().Category, DistinctCategories(todos)))
}
