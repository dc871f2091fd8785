package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	p := Clamp(-5, 0)
	assert.Equal(t, 0, p.Skip, "negative skip should clamp to 0")
	assert.Equal(t, DefaultLimit, p.Limit, "zero limit should fall back to the default")

	p = Clamp(20, 500)
	assert.Equal(t, 20, p.Skip)
	assert.Equal(t, MaxLimit, p.Limit, "limit should be capped")

	p = Clamp(0, 25)
	assert.Equal(t, 25, p.Limit)
}

func TestNewPage(t *testing.T) {
	items := []string{"a", "b", "c"}

	page := NewPage(items, 47, Params{Skip: 0, Limit: 10})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 5, page.Pages, "47 rows at 10 per page is 5 pages")
	assert.Equal(t, int64(47), page.Total)

	page = NewPage(items, 47, Params{Skip: 20, Limit: 10})
	assert.Equal(t, 3, page.Page, "skip=20 lands on page 3")

	// Unaligned window reports the page it starts in.
	page = NewPage(items, 47, Params{Skip: 5, Limit: 10})
	assert.Equal(t, 1, page.Page)
}

func TestNewPageEmpty(t *testing.T) {
	page := NewPage[string](nil, 0, Params{Skip: 0, Limit: 10})
	assert.NotNil(t, page.Items, "items must serialize as [] rather than null")
	assert.Len(t, page.Items, 0)
	assert.Equal(t, 0, page.Pages)
	assert.Equal(t, 1, page.Page)
}

func TestNewPageExactBoundary(t *testing.T) {
	page := NewPage([]int{1}, 30, Params{Skip: 0, Limit: 10})
	assert.Equal(t, 3, page.Pages, "exact multiple should not add a trailing page")
}
