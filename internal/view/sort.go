package view

import (
	"cmp"
	"slices"

	"github.com/hy4ri/todo-journal/internal/api"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the order of the rendered todos.
type SortKey string

const (
	SortCreatedDesc SortKey = "CREATED_DESC"
	SortCreatedAsc  SortKey = "CREATED_ASC"
	SortDueAsc      SortKey = "DUE_ASC"
	SortDueDesc     SortKey = "DUE_DESC"
	SortStatus      SortKey = "STATUS"
	SortTextAsc     SortKey = "TEXT_ASC"
	SortTextDesc    SortKey = "TEXT_DESC"
	SortCategoryAsc SortKey = "CATEGORY_ASC"
)

// SortKeys lists the keys in the order the UI cycles through them.
var SortKeys = []SortKey{
	SortCreatedDesc, SortCreatedAsc,
	SortDueAsc, SortDueDesc,
	SortStatus,
	SortTextAsc, SortTextDesc,
	SortCategoryAsc,
}

// ParseSortKey returns the key named s. Unknown names report false.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Label returns the human readable name of the key.
func (k SortKey) Label() string {
	switch k {
	case SortCreatedDesc:
		return "Created (new → old)"
	case SortCreatedAsc:
		return "Created (old → new)"
	case SortDueAsc:
		return "Due (early → late)"
	case SortDueDesc:
		return "Due (late → early)"
	case SortStatus:
		return "Status (open → done)"
	case SortTextAsc:
		return "Text (A → Z)"
	case SortTextDesc:
		return "Text (Z → A)"
	case SortCategoryAsc:
		return "Category (A → Z)"
	default:
		return string(k)
	}
}

// Next returns the key after k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	for i, candidate := range SortKeys {
		if candidate == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortCreatedDesc
}

// DefaultLanguage is the collation language used when none is configured.
var DefaultLanguage = language.German

// Sorter orders todos. Text comparisons use a case and accent insensitive
// collator for a fixed language, so results do not depend on the process
// locale. A Sorter is not safe for concurrent use.
type Sorter struct {
	col *collate.Collator
}

// NewSorter returns a Sorter collating text for lang.
func NewSorter(lang language.Tag) *Sorter {
	return &Sorter{col: collate.New(lang, collate.Loose)}
}

// NewSorterForLocale parses a BCP 47 locale such as "de" or "en-US" and falls
// back to DefaultLanguage when it does not parse.
func NewSorterForLocale(locale string) *Sorter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = DefaultLanguage
	}
	return NewSorter(tag)
}

// Sort returns a new slice holding todos ordered by key. Equal elements keep
// their input order. Unknown keys return an unchanged copy.
func (s *Sorter) Sort(todos []api.Todo, key SortKey) []api.Todo {
	out := slices.Clone(todos)
	if out == nil {
		out = []api.Todo{}
	}
	compare := s.comparator(key)
	if compare == nil {
		return out
	}
	slices.SortStableFunc(out, compare)
	return out
}

func (s *Sorter) comparator(key SortKey) func(a, b api.Todo) int {
	switch key {
	case SortCreatedAsc:
		return func(a, b api.Todo) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortCreatedDesc:
		return func(a, b api.Todo) int { return b.CreatedAt.Compare(a.CreatedAt) }
	case SortDueAsc:
		return func(a, b api.Todo) int { return compareDue(a, b, false) }
	case SortDueDesc:
		return func(a, b api.Todo) int { return compareDue(a, b, true) }
	case SortStatus:
		return func(a, b api.Todo) int { return compareDone(a.Done, b.Done) }
	case SortTextAsc:
		return func(a, b api.Todo) int { return s.col.CompareString(a.Text, b.Text) }
	case SortTextDesc:
		return func(a, b api.Todo) int { return s.col.CompareString(b.Text, a.Text) }
	case SortCategoryAsc:
		return func(a, b api.Todo) int { return s.col.CompareString(a.Category, b.Category) }
	default:
		return nil
	}
}

// compareDue orders by due date. Todos without one go last whatever the
// direction; two todos without one are equal.
func compareDue(a, b api.Todo, desc bool) int {
	da, okA := a.Due()
	db, okB := b.Due()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if desc {
		return db.Time().Compare(da.Time())
	}
	return da.Time().Compare(db.Time())
}

// compareDone puts open todos before done ones.
func compareDone(a, b bool) int {
	return cmp.Compare(boolRank(a), boolRank(b))
}

func boolRank(done bool) int {
	if done {
		return 1
	}
	return 0
}
