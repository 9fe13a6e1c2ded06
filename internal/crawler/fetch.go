package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// drainLimit bounds how much of an error body is read to reuse the connection
const drainLimit = 64 << 10

// Fetcher downloads and parses HTML pages
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher that identifies itself with userAgent
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{client: client, userAgent: userAgent}
}

// Document GETs pageURL and parses the body. The document's Url is the
// final URL after redirects, for resolving relative links.
func (f *Fetcher) Document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The origin answers 403 to default client identifiers
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}
	doc.Url = resp.Request.URL

	return doc, nil
}
