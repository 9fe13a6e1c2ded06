package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want string
	}{
		{"trailing slash", "https://example.com/blog/my-post-title/", "my-post-title"},
		{"no trailing slash", "https://example.com/blog/my-post-title", "my-post-title"},
		{"query ignored", "https://example.com/category/en/?ref=nav", "en"},
		{"relative path", "/category/pt/", "pt"},
		{"double slash", "https://example.com/blog//post//", "post"},
		{"root", "https://example.com/", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slug(tc.url))
		})
	}
}

func TestNewCategoryTrimsLabel(t *testing.T) {
	c := NewCategory("https://example.com/category/en/", "\n  English \t")
	assert.Equal(t, "English", c.Label)
	assert.Equal(t, "en", c.Slug)
}

func TestPaginationStateIsMonotonic(t *testing.T) {
	p := NewPaginationState()
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.TotalPages)

	assert.True(t, p.Observe(4))
	assert.Equal(t, 4, p.TotalPages)

	// a later page reporting fewer pages never shrinks the total
	assert.False(t, p.Observe(2))
	assert.False(t, p.Observe(4))
	assert.Equal(t, 4, p.TotalPages)

	for i := 0; i < 4; i++ {
		assert.False(t, p.Done())
		p.Advance()
	}
	assert.True(t, p.Done())
}

func TestSummaryTotals(t *testing.T) {
	var s Summary
	s.Add(CategoryStats{Pages: 2, Found: 3, Fetched: 2, Skipped: 1})
	s.Add(CategoryStats{Pages: 1, Found: 1, Failed: 1})

	total := s.Totals()
	assert.Equal(t, 3, total.Pages)
	assert.Equal(t, 4, total.Found)
	assert.Equal(t, 2, total.Fetched)
	assert.Equal(t, 1, total.Skipped)
	assert.Equal(t, 1, total.Failed)
	assert.True(t, s.HasFailures())

	var clean Summary
	clean.Add(CategoryStats{Pages: 1, Fetched: 1})
	assert.False(t, clean.HasFailures())

	var aborted Summary
	aborted.Add(CategoryStats{Err: errors.New("boom")})
	assert.True(t, aborted.HasFailures())
}
