package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-scripts/blogpdf/internal/types"
)

func TestTrackerDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	p.StartCategory("English")
	p.SetTotalPages(3)
	p.PageDone(1)
	p.StartPost("https://example.com/blog/post/")
	p.FinishPost()
	p.FinishCategory()

	assert.Empty(t, buf.String())
	assert.InDelta(t, 1.0/3.0, p.fraction(), 0.001)
}

func TestTrackerDrawsPageProgress(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.StartCategory("English")
	p.SetTotalPages(4)
	p.PageDone(1)
	p.PageDone(2)
	p.FinishCategory()

	out := buf.String()
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "1/4 pages")
	assert.Contains(t, out, "2/4 pages")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.InDelta(t, 0.5, p.fraction(), 0.001)
}

func TestTrackerProgressIsCapped(t *testing.T) {
	p := New(&bytes.Buffer{}, false)
	p.StartCategory("x")
	p.PageDone(3)
	assert.Equal(t, 1.0, p.fraction())
}

func TestFormatSpinnerMessage(t *testing.T) {
	short := "https://example.com/blog/post/"
	assert.Equal(t, short, formatSpinnerMessage(short))

	long := "https://www.example.com/blog/" + strings.Repeat("very-long-slug-", 8) + "end/"
	got := formatSpinnerMessage(long)
	assert.LessOrEqual(t, len(got), 60)
	assert.True(t, strings.HasPrefix(got, "www.example.com..."))
	assert.True(t, strings.HasSuffix(got, "end/"))
}

func TestRenderSummary(t *testing.T) {
	var s types.Summary
	s.Add(types.CategoryStats{
		Category: types.NewCategory("https://example.com/category/en/", "English"),
		Pages:    2, Found: 3, Fetched: 2, Skipped: 1,
	})
	s.Add(types.CategoryStats{
		Category: types.NewCategory("https://example.com/category/news/", "News"),
		Pages:    1, Found: 1, Failed: 1,
	})
	s.Add(types.CategoryStats{
		Category: types.NewCategory("https://example.com/category/old/", "Old"),
		Err:      errors.New("listing page 2 returned 500"),
	})

	out := RenderSummary(s)

	for _, want := range []string{"category", "English", "News", "Old", "total", "partial", "aborted: listing page 2 returned 500"} {
		assert.Contains(t, out, want)
	}
}
