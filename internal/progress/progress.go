package progress

import (
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/bubbles/progress"
)

// Tracker draws a page progress bar per category and a spinner per post.
// A disabled Tracker writes nothing.
type Tracker struct {
	out        io.Writer
	enabled    bool
	bar        progress.Model
	spinner    *spinner.Spinner
	label      string
	totalPages int
	donePages  int
	mu         sync.Mutex
}

// New creates a new Tracker writing to out
func New(out io.Writer, enabled bool) *Tracker {
	return &Tracker{
		out:     out,
		enabled: enabled,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(out)),
	}
}

// StartCategory resets the bar for a new category
func (p *Tracker) StartCategory(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = label
	p.totalPages = 1
	p.donePages = 0
}

// SetTotalPages updates the number of listing pages of the category
func (p *Tracker) SetTotalPages(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalPages = total
}

// PageDone marks a listing page as processed and redraws the bar
func (p *Tracker) PageDone(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.donePages = page
	if !p.enabled || p.totalPages == 0 {
		return
	}

	fmt.Fprintf(p.out, "\r%s %s %d/%d pages",
		p.label,
		p.bar.ViewAs(p.fraction()),
		p.donePages,
		p.totalPages)
}

// FinishCategory ends the bar line
func (p *Tracker) FinishCategory() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled && p.donePages > 0 {
		fmt.Fprintln(p.out)
	}
}

// StartPost shows a spinner while a post is fetched and rendered
func (p *Tracker) StartPost(postURL string) {
	if !p.enabled {
		return
	}
	p.spinner.Suffix = " " + formatSpinnerMessage(postURL)
	p.spinner.Start()
}

// FinishPost stops the post spinner
func (p *Tracker) FinishPost() {
	if !p.enabled {
		return
	}
	p.spinner.Stop()
}

func (p *Tracker) fraction() float64 {
	if p.totalPages == 0 {
		return 0
	}
	f := float64(p.donePages) / float64(p.totalPages)
	if f > 1 {
		return 1
	}
	return f
}

// formatSpinnerMessage shortens long URLs to host plus path tail
func formatSpinnerMessage(urlStr string) string {
	maxLen := 60
	if len(urlStr) <= maxLen {
		return urlStr
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return "..." + urlStr[len(urlStr)-maxLen:]
	}

	domain := u.Host
	path := u.Path
	if keep := maxLen - len(domain) - 3; keep > 0 && len(path) > keep {
		path = "..." + path[len(path)-keep:]
	}
	return domain + path
}
