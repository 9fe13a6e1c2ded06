package types

import (
	"net/url"
	"strings"
)

// Category is a labeled post listing discovered on the blog root
type Category struct {
	URL   string
	Label string
	Slug  string
}

// PostReference points at a single post found on a listing page
type PostReference struct {
	URL  string
	Slug string
}

// NewCategory builds a Category and derives its slug from the URL
func NewCategory(rawURL, label string) Category {
	return Category{
		URL:   rawURL,
		Label: strings.TrimSpace(label),
		Slug:  Slug(rawURL),
	}
}

// NewPostReference builds a PostReference and derives its slug from the URL
func NewPostReference(rawURL string) PostReference {
	return PostReference{URL: rawURL, Slug: Slug(rawURL)}
}

// Slug returns the last non-empty path segment of a URL.
// https://example.com/blog/my-post-title/ yields "my-post-title".
func Slug(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" && s != "." && s != ".." {
			return s
		}
	}
	return ""
}

// PaginationState tracks the listing walk for one category.
// TotalPages starts at 1 and only ever grows.
type PaginationState struct {
	CurrentPage int
	TotalPages  int
}

// NewPaginationState returns the state for the first listing page
func NewPaginationState() *PaginationState {
	return &PaginationState{CurrentPage: 1, TotalPages: 1}
}

// Observe records a page count read from pagination controls.
// It reports whether TotalPages changed.
func (p *PaginationState) Observe(total int) bool {
	if total > p.TotalPages {
		p.TotalPages = total
		return true
	}
	return false
}

// Advance moves to the next listing page
func (p *PaginationState) Advance() {
	p.CurrentPage++
}

// Done reports whether every known page has been visited
func (p *PaginationState) Done() bool {
	return p.CurrentPage > p.TotalPages
}

// CategoryStats counts what happened while crawling one category
type CategoryStats struct {
	Category Category
	Pages    int
	Found    int
	Fetched  int
	Skipped  int
	Failed   int
	Err      error
}

// Summary collects the per-category results of a run
type Summary struct {
	Categories []CategoryStats
}

// Add appends the stats of a finished category
func (s *Summary) Add(stats CategoryStats) {
	s.Categories = append(s.Categories, stats)
}

// Totals sums the counters over every category
func (s *Summary) Totals() CategoryStats {
	var total CategoryStats
	total.Category.Label = "total"
	for _, c := range s.Categories {
		total.Pages += c.Pages
		total.Found += c.Found
		total.Fetched += c.Fetched
		total.Skipped += c.Skipped
		total.Failed += c.Failed
	}
	return total
}

// HasFailures reports whether any post failed or any category was aborted
func (s *Summary) HasFailures() bool {
	for _, c := range s.Categories {
		if c.Failed > 0 || c.Err != nil {
			return true
		}
	}
	return false
}
