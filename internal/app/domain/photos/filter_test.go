package photos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-photoshare/internal/app/models"
)

func ids(photos []models.Photo) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.ID)
	}
	return out
}

var sample = []models.Photo{
	{ID: "1", Category: "Nature", Description: "Sunset over the LAKE"},
	{ID: "2", Category: "portrait", Description: "Graduation day"},
	{ID: "3", Category: "nature", Description: "Forest trail"},
	{ID: "4", Category: "", Description: ""},
	{ID: "5", Category: "Event", Description: "Straße party"},
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter keeps everything", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"search is case insensitive", Filter{Query: "lake"}, []string{"1"}},
		{"search matches categories too", Filter{Query: "PORTRAIT"}, []string{"2"}},
		{"any term may match", Filter{Query: "forest  graduation"}, []string{"2", "3"}},
		{"search uses full case folding", Filter{Query: "STRASSE"}, []string{"5"}},
		{"category equality ignores case", Filter{Category: "NATURE"}, []string{"1", "3"}},
		{"all disables the category filter", Filter{Category: "All"}, []string{"1", "2", "3", "4", "5"}},
		{"search and category combine", Filter{Query: "trail", Category: "nature"}, []string{"3"}},
		{"no match", Filter{Query: "zebra"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(sample)))
		})
	}
}

func TestFilterActive(t *testing.T) {
	assert.False(t, Filter{Query: "  ", Category: "all"}.Active())
	assert.True(t, Filter{Query: "x"}.Active())
	assert.True(t, Filter{Category: "nature"}.Active())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Event", "Nature", "Portrait"}, Categories(sample))
	assert.Empty(t, Categories(nil))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("zero size returns everything", func(t *testing.T) {
		got, page := Paginate(items, 3, 0)
		assert.Equal(t, items, got)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("windows", func(t *testing.T) {
		got, page := Paginate(items, 2, 2)
		assert.Equal(t, []int{3, 4}, got)
		assert.Equal(t, Page{Number: 2, Total: 3, Size: 2}, page)
		assert.True(t, page.HasPrev())
		assert.True(t, page.HasNext())
	})

	t.Run("out of range pages are clamped", func(t *testing.T) {
		got, page := Paginate(items, 9, 2)
		assert.Equal(t, []int{5}, got)
		assert.False(t, page.HasNext())

		got, page = Paginate(items, -1, 2)
		assert.Equal(t, []int{1, 2}, got)
		assert.False(t, page.HasPrev())
	})
}
