// Package crawler walks a paginated blog archive and archives each post
// as a PDF.
//
// A run discovers the category links on the blog root, then visits every
// listing page of each category in order. Posts whose PDF already exists
// are skipped, so an interrupted run can simply be started again. Exactly
// one request or render is in flight at any time, and every request is
// preceded by a randomized politeness delay.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/go-scripts/blogpdf/internal/cleaner"
	"github.com/go-scripts/blogpdf/internal/config"
	"github.com/go-scripts/blogpdf/internal/types"
	"github.com/go-scripts/blogpdf/internal/writer"
)

// Renderer turns a cleaned HTML page into a PDF file at outPath
type Renderer interface {
	RenderToFile(ctx context.Context, html []byte, outPath string) error
}

// Reporter receives progress events for display
type Reporter interface {
	StartCategory(label string)
	SetTotalPages(total int)
	PageDone(page int)
	FinishCategory()
	StartPost(url string)
	FinishPost()
}

type noopReporter struct{}

func (noopReporter) StartCategory(string) {}
func (noopReporter) SetTotalPages(int)    {}
func (noopReporter) PageDone(int)         {}
func (noopReporter) FinishCategory()      {}
func (noopReporter) StartPost(string)     {}
func (noopReporter) FinishPost()          {}

// Crawler manages the archive run
type Crawler struct {
	config   config.Configuration
	fetcher  *Fetcher
	cleaner  *cleaner.Cleaner
	renderer Renderer
	writer   *writer.FileWriter
	delay    Delay
	logger   *log.Logger
	reporter Reporter
	client   *http.Client
}

// Option customizes a Crawler
type Option func(*Crawler)

// WithLogger sets the logger for progress and failures
func WithLogger(logger *log.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithReporter sets the progress display
func WithReporter(r Reporter) Option {
	return func(c *Crawler) {
		c.reporter = r
	}
}

// WithHTTPClient replaces the default client built from the configured timeout
func WithHTTPClient(client *http.Client) Option {
	return func(c *Crawler) {
		c.client = client
	}
}

// WithSleep replaces the function used for politeness pauses
func WithSleep(sleep SleepFunc) Option {
	return func(c *Crawler) {
		c.delay.sleep = sleep
	}
}

// New creates a Crawler for cfg that renders with renderer
func New(cfg config.Configuration, renderer Renderer, opts ...Option) (*Crawler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if renderer == nil {
		return nil, fmt.Errorf("invalid configuration: renderer is required")
	}

	// Setup file writer
	w, err := writer.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	c := &Crawler{
		config:   cfg,
		cleaner:  cleaner.New(cfg.CleanerConfig()),
		renderer: renderer,
		writer:   w,
		delay:    NewDelay(cfg.DelayMin, cfg.DelayMax),
		logger:   log.New(io.Discard),
		reporter: noopReporter{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: cfg.Timeout}
	}
	c.fetcher = NewFetcher(c.client, cfg.UserAgent)

	return c, nil
}

// Run discovers the categories and crawls each one that is not excluded.
// Only a discovery failure or cancellation is returned as an error; other
// failures are recorded in the summary.
func (c *Crawler) Run(ctx context.Context) (types.Summary, error) {
	var summary types.Summary
	c.logger.Info("Archiving into", "dir", c.writer.OutputDir())

	categories, err := c.Discover(ctx)
	if err != nil {
		return summary, err
	}

	kept, dropped := FilterCategories(categories, c.config.ExcludeLabels)
	c.logger.Info("Found categories", "count", len(categories), "excluded", len(dropped))
	for _, category := range dropped {
		c.logger.Debug("Excluding category", "label", category.Label, "url", category.URL)
	}

	for _, category := range kept {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		c.logger.Info("Scraping category", "label", category.Label, "url", category.URL)
		stats, err := c.CrawlSection(ctx, category)
		summary.Add(stats)

		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			c.logger.Error("Category aborted", "label", category.Label, "err", err)
			continue
		}

		c.logger.Info("Finished scraping category",
			"label", category.Label,
			"fetched", stats.Fetched,
			"skipped", stats.Skipped,
			"failed", stats.Failed)
	}

	return summary, nil
}
