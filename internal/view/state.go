package view

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Slot keys the view state is persisted under.
const (
	KeyFilter   = "todo_filter"
	KeyCategory = "todo_category_filter"
	KeySort     = "todo_sortBy"
	KeyPage     = "todo_page"
)

// Slots is string storage that survives restarts. Get reports false for
// keys that were never written.
type Slots interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// State is the user's filter, sort and pagination choice.
type State struct {
	Filter   StatusFilter
	Category string
	Sort     SortKey
	Page     int
}

// DefaultState is used for every slot that is absent or invalid.
func DefaultState() State {
	return State{
		Filter:   FilterAll,
		Category: AllCategories,
		Sort:     SortCreatedDesc,
		Page:     1,
	}
}

// Store owns the view state. Every setter persists before it returns, and
// changing the filter, category or sort sends the user back to page 1.
type Store struct {
	slots  Slots
	state  State
	logger *slog.Logger
}

// Load reads the four slots independently. Anything missing or malformed
// keeps its default; read errors are logged and otherwise ignored.
func Load(slots Slots, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{slots: slots, state: DefaultState(), logger: logger}

	if v, ok := s.read(KeyFilter); ok {
		if f, valid := ParseStatusFilter(v); valid {
			s.state.Filter = f
		} else {
			logger.Debug("ignoring persisted filter", "value", v)
		}
	}
	if v, ok := s.read(KeyCategory); ok {
		s.state.Category = normalizeCategory(v)
	}
	if v, ok := s.read(KeySort); ok {
		if k, valid := ParseSortKey(v); valid {
			s.state.Sort = k
		} else {
			logger.Debug("ignoring persisted sort key", "value", v)
		}
	}
	if v, ok := s.read(KeyPage); ok {
		if p, valid := parsePage(v); valid {
			s.state.Page = p
		} else {
			logger.Debug("ignoring persisted page", "value", v)
		}
	}
	return s
}

func (s *Store) read(key string) (string, bool) {
	if s.slots == nil {
		return "", false
	}
	v, ok, err := s.slots.Get(key)
	if err != nil {
		s.logger.Warn("failed to read view state", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

// State returns a copy of the current state.
func (s *Store) State() State {
	return s.state
}

// SetFilter selects the status filter and returns to page 1.
func (s *Store) SetFilter(f StatusFilter) error {
	if _, ok := ParseStatusFilter(string(f)); !ok {
		return fmt.Errorf("unknown filter %q", f)
	}
	s.state.Filter = f
	s.state.Page = 1
	return s.persist(KeyFilter, string(f), true)
}

// SetCategory selects the category filter and returns to page 1. An empty
// category means AllCategories.
func (s *Store) SetCategory(category string) error {
	category = normalizeCategory(category)
	s.state.Category = category
	s.state.Page = 1
	return s.persist(KeyCategory, category, true)
}

// SetSort selects the sort key and returns to page 1.
func (s *Store) SetSort(k SortKey) error {
	if _, ok := ParseSortKey(string(k)); !ok {
		return fmt.Errorf("unknown sort key %q", k)
	}
	s.state.Sort = k
	s.state.Page = 1
	return s.persist(KeySort, string(k), true)
}

// SetPage selects a page. Values below 1 become 1; the upper bound is applied
// when the view is derived, since it depends on the data.
func (s *Store) SetPage(page int) error {
	s.state.Page = max(1, page)
	return s.persist("", "", true)
}

// NextPage advances one page from the effective page, stopping at totalPages.
func (s *Store) NextPage(totalPages int) error {
	current := ClampPage(s.state.Page, totalPages)
	return s.SetPage(ClampPage(current+1, totalPages))
}

// PrevPage goes back one page from the effective page, stopping at 1.
func (s *Store) PrevPage(totalPages int) error {
	current := ClampPage(s.state.Page, totalPages)
	return s.SetPage(current - 1)
}

// persist writes key (when set) and, if withPage, the page slot. The
// in-memory state is already updated, so a failed write only loses
// durability.
func (s *Store) persist(key, value string, withPage bool) error {
	if s.slots == nil {
		return nil
	}
	var errs []error
	if key != "" {
		if err := s.slots.Set(key, value); err != nil {
			errs = append(errs, fmt.Errorf("failed to persist %s: %w", key, err))
		}
	}
	if withPage {
		if err := s.slots.Set(KeyPage, strconv.Itoa(s.state.Page)); err != nil {
			errs = append(errs, fmt.Errorf("failed to persist %s: %w", KeyPage, err))
		}
	}
	return errors.Join(errs...)
}

func normalizeCategory(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return AllCategories
	}
	return v
}

// parsePage accepts whole numbers >= 1, also written as "2.0" or "1e1".
func parsePage(v string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
