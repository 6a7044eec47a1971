package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateCoversInput(t *testing.T) {
	for n := 0; n <= 40; n++ {
		items := seq(n)
		total := TotalPages(n, PageSize)
		assert.Equal(t, max(1, (n+PageSize-1)/PageSize), total, "n=%d", n)

		var collected []int
		for p := 1; p <= total; p++ {
			page := Paginate(items, p, PageSize)
			assert.Equal(t, p, page.Number)
			assert.Equal(t, total, page.TotalPages)
			assert.LessOrEqual(t, len(page.Items), PageSize)
			collected = append(collected, page.Items...)
		}
		assert.Len(t, collected, n, "n=%d", n)
		if n > 0 {
			assert.Equal(t, items, collected)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	items := seq(17)

	tests := []struct {
		name      string
		requested int
		wantPage  int
		wantItems []int
	}{
		{"first", 1, 1, seq(8)},
		{"second", 2, 2, []int{8, 9, 10, 11, 12, 13, 14, 15}},
		{"past the end", 10, 3, []int{16}},
		{"zero", 0, 1, seq(8)},
		{"negative", -4, 1, seq(8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.requested, PageSize)
			assert.Equal(t, tt.wantPage, page.Number)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, tt.wantItems, page.Items)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string{}, 5, PageSize)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Items)
}

func TestPaginateDefaultSize(t *testing.T) {
	page := Paginate(seq(20), 1, 0)
	assert.Len(t, page.Items, PageSize)
}

func TestPaginateItemsDoNotGrowIntoNextPage(t *testing.T) {
	items := seq(17)
	page := Paginate(items, 1, PageSize)
	require.Len(t, page.Items, 8)

	_ = append(page.Items, 99)
	assert.Equal(t, 8, items[8])
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(5, 0))
	assert.Equal(t, 3, ClampPage(3, 4))
	assert.Equal(t, 4, ClampPage(9, 4))
	assert.Equal(t, 1, ClampPage(-1, 4))
}
