package crawler

import (
	"context"
	"fmt"

	"github.com/go-scripts/blogpdf/internal/queue"
	"github.com/go-scripts/blogpdf/internal/types"
)

// CrawlSection visits the listing pages of one category in increasing order
// and archives every post that has no PDF yet. A listing page that cannot
// be fetched ends the category, since later page numbers are only known
// from earlier pages.
func (c *Crawler) CrawlSection(ctx context.Context, category types.Category) (types.CategoryStats, error) {
	stats := types.CategoryStats{Category: category}

	if _, err := c.writer.CategoryDir(category.Slug); err != nil {
		stats.Err = err
		return stats, err
	}

	c.reporter.StartCategory(category.Label)
	defer c.reporter.FinishCategory()

	posts := queue.New()
	state := types.NewPaginationState()

	for !state.Done() {
		pageURL := ListingURL(category.URL, state.CurrentPage)

		if err := c.delay.Wait(ctx); err != nil {
			stats.Err = err
			return stats, err
		}

		c.logger.Info("Scraping page", "page", state.CurrentPage, "url", pageURL)
		doc, err := c.fetcher.Document(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				stats.Err = ctx.Err()
				return stats, ctx.Err()
			}
			err = fmt.Errorf("%w: page %d: %w", ErrPageFetch, state.CurrentPage, err)
			stats.Err = err
			return stats, err
		}
		stats.Pages++

		labels := PaginationLabels(doc, c.config.PaginationSelector)
		if total, ok := TotalPagesFromLabels(labels); ok {
			if state.Observe(total) {
				c.logger.Info("Blog has pages", "total", state.TotalPages)
				c.reporter.SetTotalPages(state.TotalPages)
			}
		} else if len(labels) > 0 {
			c.logger.Debug("Unreadable pagination controls", "labels", labels)
		}

		found := ExtractPosts(doc, c.config.PostSelector)
		c.logger.Info("Found blog posts", "count", len(found), "page", state.CurrentPage)

		for _, post := range found {
			if post.Slug == "" {
				c.logger.Warn("Post link has no slug, ignoring", "url", post.URL)
				continue
			}
			if posts.Seen(post.URL) {
				c.logger.Debug("Duplicate post link", "url", post.URL)
				continue
			}
			posts.Add(post)
			stats.Found++
		}
		c.logger.Debug("Queued posts", "page", state.CurrentPage, "queued", posts.Len())

		for {
			post, ok := posts.Next()
			if !ok {
				break
			}
			if err := c.archivePost(ctx, category, post, &stats); err != nil {
				stats.Err = err
				return stats, err
			}
		}

		c.reporter.PageDone(state.CurrentPage)
		state.Advance()
	}

	c.logger.Debug("Listing walk complete", "label", category.Label, "pages", stats.Pages, "unique_posts", posts.SeenCount())
	return stats, nil
}

// archivePost fetches, cleans and renders one post unless its PDF exists.
// Only cancellation is returned; fetch and render failures are logged and
// counted.
func (c *Crawler) archivePost(ctx context.Context, category types.Category, post types.PostReference, stats *types.CategoryStats) error {
	out := c.writer.PostPath(category.Slug, post.Slug)
	if c.writer.Exists(out) {
		c.logger.Info("Output file already exists, skipping", "file", out)
		stats.Skipped++
		return nil
	}

	if err := c.delay.Wait(ctx); err != nil {
		return err
	}

	c.reporter.StartPost(post.URL)
	c.logger.Info("Retrieving", "url", post.URL)
	err := c.fetchAndRender(ctx, post, out)
	c.reporter.FinishPost()

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Error("Failed to archive post", "url", post.URL, "err", err)
		stats.Failed++
		return nil
	}

	c.logger.Info("Saved", "file", out)
	stats.Fetched++
	return nil
}

func (c *Crawler) fetchAndRender(ctx context.Context, post types.PostReference, out string) error {
	doc, err := c.fetcher.Document(ctx, post.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPostFetch, err)
	}

	page, err := c.cleaner.Clean(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	if err := c.renderer.RenderToFile(ctx, page, out); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}
