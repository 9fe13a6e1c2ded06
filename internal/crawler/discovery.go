package crawler

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-scripts/blogpdf/internal/types"
)

// Discover fetches the blog root and returns its category links in
// document order
func (c *Crawler) Discover(ctx context.Context) ([]types.Category, error) {
	doc, err := c.fetcher.Document(ctx, c.config.RootURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	return ExtractCategories(doc, c.config.CategoryMarker), nil
}

// ExtractCategories collects anchors whose href contains marker. Repeated
// links to the same category keep their first position.
func ExtractCategories(doc *goquery.Document, marker string) []types.Category {
	var categories []types.Category
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, marker) {
			return
		}

		abs := resolveURL(doc.Url, href)
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true

		category := types.NewCategory(abs, a.Text())
		if category.Label == "" {
			category.Label = category.Slug
		}
		categories = append(categories, category)
	})

	return categories
}

// FilterCategories splits categories into those to crawl and those whose
// label contains one of the excluded substrings
func FilterCategories(categories []types.Category, excluded []string) (kept, dropped []types.Category) {
	for _, category := range categories {
		if labelExcluded(category.Label, excluded) {
			dropped = append(dropped, category)
			continue
		}
		kept = append(kept, category)
	}
	return kept, dropped
}

func labelExcluded(label string, excluded []string) bool {
	for _, ex := range excluded {
		if ex != "" && strings.Contains(label, ex) {
			return true
		}
	}
	return false
}

// resolveURL makes href absolute against base and drops fragments.
// Non-http(s) targets yield "".
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	ref.Fragment = ""
	return ref.String()
}
