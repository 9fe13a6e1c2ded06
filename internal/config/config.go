// Package config holds the settings of a crawl run.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// BLOGPDF_* environment variables (optionally read from a .env file), and
// finally command line flags applied by the caller.
package config

import (
	"fmt"
	"net/url"
	"runtime"
	"slices"
	"time"

	"github.com/go-scripts/blogpdf/internal/cleaner"
)

// Renderer backends
const (
	RendererChrome      = "chrome"
	RendererWkhtmltopdf = "wkhtmltopdf"
)

// Default configuration values.
const (
	DefaultRootURL        = "https://www.monetizemore.com/blog"
	DefaultCategoryMarker = "category/"
	DefaultOutputDir      = "output"

	// DefaultUserAgent is a desktop browser string; the origin rejects
	// the Go client's default identifier with 403.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

	DefaultTimeout       = 30 * time.Second
	DefaultRenderTimeout = 60 * time.Second

	// Politeness delay range in whole seconds, inclusive.
	DefaultDelayMin = 1
	DefaultDelayMax = 3

	DefaultPaginationSelector = "a.page-numbers"
	DefaultPostSelector       = "div.single-casestudy-otr"
)

// DefaultExcludeLabels drops the translated copies of the archive
var DefaultExcludeLabels = []string{"Portuguese"}

// Configuration holds all the settings for a crawl run
type Configuration struct {
	RootURL        string   `yaml:"root_url"`
	CategoryMarker string   `yaml:"category_marker"`
	ExcludeLabels  []string `yaml:"exclude_labels"`

	OutputDir string        `yaml:"output_dir"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	DelayMin  int           `yaml:"delay_min"`
	DelayMax  int           `yaml:"delay_max"`

	PaginationSelector string `yaml:"pagination_selector"`
	PostSelector       string `yaml:"post_selector"`

	Noise        []cleaner.Rule `yaml:"noise"`
	Markers      []cleaner.Rule `yaml:"markers"`
	PageBreakCSS string         `yaml:"page_break_css"`

	Renderer        string        `yaml:"renderer"`
	WkhtmltopdfPath string        `yaml:"wkhtmltopdf_path"`
	ChromePath      string        `yaml:"chrome_path"`
	RenderTimeout   time.Duration `yaml:"render_timeout"`

	Verbose bool `yaml:"verbose"`
}

// Default returns a configuration that crawls the original archive
func Default() *Configuration {
	return &Configuration{
		RootURL:            DefaultRootURL,
		CategoryMarker:     DefaultCategoryMarker,
		ExcludeLabels:      slices.Clone(DefaultExcludeLabels),
		OutputDir:          DefaultOutputDir,
		UserAgent:          DefaultUserAgent,
		Timeout:            DefaultTimeout,
		DelayMin:           DefaultDelayMin,
		DelayMax:           DefaultDelayMax,
		PaginationSelector: DefaultPaginationSelector,
		PostSelector:       DefaultPostSelector,
		Noise:              slices.Clone(cleaner.DefaultNoise),
		Markers:            slices.Clone(cleaner.DefaultMarkers),
		PageBreakCSS:       cleaner.DefaultPageBreakCSS,
		Renderer:           RendererChrome,
		WkhtmltopdfPath:    DefaultWkhtmltopdfPath(runtime.GOOS),
		RenderTimeout:      DefaultRenderTimeout,
	}
}

// DefaultWkhtmltopdfPath returns the installer's location of the binary
func DefaultWkhtmltopdfPath(goos string) string {
	if goos == "windows" {
		return `C:\Program Files\wkhtmltopdf\bin\wkhtmltopdf.exe`
	}
	return "/usr/local/bin/wkhtmltopdf"
}

// CleanerConfig returns the cleaning rules of the configuration
func (c *Configuration) CleanerConfig() cleaner.Config {
	return cleaner.Config{
		Noise:   c.Noise,
		Markers: c.Markers,
		CSS:     c.PageBreakCSS,
	}
}

// Validate checks the configuration for values the crawl cannot run with
func (c *Configuration) Validate() error {
	u, err := url.Parse(c.RootURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidRootURL, c.RootURL)
	}
	if c.CategoryMarker == "" {
		return ErrEmptyCategoryMarker
	}
	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}
	if c.UserAgent == "" {
		return ErrEmptyUserAgent
	}
	if c.Timeout <= 0 || c.RenderTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("%w: %d..%d", ErrInvalidDelay, c.DelayMin, c.DelayMax)
	}
	if c.PaginationSelector == "" || c.PostSelector == "" {
		return ErrEmptySelector
	}

	switch c.Renderer {
	case RendererChrome:
	case RendererWkhtmltopdf:
		if c.WkhtmltopdfPath == "" {
			return ErrEmptyWkhtmltopdfPath
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, c.Renderer)
	}

	return nil
}
