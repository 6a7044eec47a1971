package view

// PageSize is the number of todos shown per page.
const PageSize = 8

// Page is one slice of an ordered sequence.
type Page[T any] struct {
	Number     int // 1-based, always within [1, TotalPages]
	TotalPages int // at least 1
	Items      []T
}

// TotalPages returns max(1, ceil(n/size)).
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage moves requested into [1, totalPages].
func ClampPage(requested, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(1, requested), totalPages)
}

// Paginate returns page requested of items. Out of range requests are
// clamped; a size of zero or less selects PageSize. Items shares the backing
// array of items.
func Paginate[T any](items []T, requested, size int) Page[T] {
	if size <= 0 {
		size = PageSize
	}
	total := TotalPages(len(items), size)
	number := ClampPage(requested, total)

	start := min((number-1)*size, len(items))
	end := min(start+size, len(items))

	return Page[T]{
		Number:     number,
		TotalPages: total,
		Items:      items[start:end:end],
	}
}
