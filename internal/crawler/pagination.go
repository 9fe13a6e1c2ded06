package crawler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/go-scripts/blogpdf/internal/types"
)

// ListingURL returns the address of listing page n of a category.
// Page 1 is the category URL itself, later pages live under page/{n}/.
func ListingURL(base string, page int) string {
	if page <= 1 {
		return base
	}

	u, err := url.Parse(base)
	if err != nil {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return fmt.Sprintf("%spage/%d/", base, page)
	}

	u.Path = strings.TrimRight(u.Path, "/") + fmt.Sprintf("/page/%d/", page)
	u.RawPath = ""
	return u.String()
}

// TotalPagesFromLabels reads the highest page number from pagination
// labels. The last control is a "next" link, so the number sits in the
// second-to-last position: ["1","2","3","4","Next"] yields 4.
func TotalPagesFromLabels(labels []string) (int, bool) {
	if len(labels) < 2 {
		return 0, false
	}

	label := strings.ReplaceAll(strings.TrimSpace(labels[len(labels)-2]), ",", "")
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// PaginationLabels returns the trimmed text of every pagination control
func PaginationLabels(doc *goquery.Document, selector string) []string {
	var labels []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
	})
	return labels
}

// ExtractPosts returns a reference for every link inside the post
// containers, in document order
func ExtractPosts(doc *goquery.Document, containerSelector string) []types.PostReference {
	var posts []types.PostReference
	doc.Find(containerSelector).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if abs := resolveURL(doc.Url, href); abs != "" {
			posts = append(posts, types.NewPostReference(abs))
		}
	})
	return posts
}
