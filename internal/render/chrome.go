package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/go-scripts/blogpdf/internal/writer"
)

// ChromeOptions configures the headless browser
type ChromeOptions struct {
	// ExecPath overrides browser discovery when set
	ExecPath string
	// Timeout bounds a single page render
	Timeout time.Duration
}

// Chrome renders pages with a shared headless Chrome instance
type Chrome struct {
	timeout       time.Duration
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChrome starts a headless browser. Close must be called to stop it.
func NewChrome(opts ChromeOptions) (*Chrome, error) {
	// Setup browser options
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	// One browser is shared by every render; each render gets its own tab
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Launch now so a missing browser is reported before crawling starts
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	return &Chrome{
		timeout:       timeout,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close shuts the browser down
func (c *Chrome) Close() {
	c.browserCancel()
	c.allocCancel()
}

// RenderToFile prints doc to a PDF at outPath
func (c *Chrome) RenderToFile(ctx context.Context, doc []byte, outPath string) error {
	src, cleanup, err := writeTempHTML(doc)
	if err != nil {
		return err
	}
	defer cleanup()

	target, err := fileURL(src)
	if err != nil {
		return fmt.Errorf("failed to build file url: %w", err)
	}

	// Create a context for this browser tab
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	defer cancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, c.timeout)
	defer timeoutCancel()

	// The tab hangs off the browser context, so follow the caller's too
	stop := context.AfterFunc(ctx, timeoutCancel)
	defer stop()

	var pdf []byte
	err = chromedp.Run(timeoutCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to print pdf: %w", err)
	}

	return writer.WriteFile(outPath, pdf)
}
