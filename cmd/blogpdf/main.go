package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/go-scripts/blogpdf/internal/config"
	"github.com/go-scripts/blogpdf/internal/crawler"
	"github.com/go-scripts/blogpdf/internal/progress"
	"github.com/go-scripts/blogpdf/internal/render"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// CLIFlags are the command line options. Zero values leave the
// configuration file and environment untouched.
type CLIFlags struct {
	Config      string   `help:"Path to configuration file" short:"c" type:"path"`
	EnvFile     string   `help:"Path to a .env file" default:".env" name:"env-file"`
	Root        string   `help:"Blog root URL to discover categories on" short:"u"`
	Output      string   `help:"Directory to store PDF files" short:"o"`
	UserAgent   string   `help:"User-Agent header sent with every request" name:"user-agent"`
	Exclude     []string `help:"Skip categories whose label contains any of these" sep:","`
	Renderer    string   `help:"PDF backend: chrome or wkhtmltopdf"`
	Wkhtmltopdf string   `help:"Path to the wkhtmltopdf binary"`
	Chrome      string   `help:"Path to the Chrome binary"`
	DelayMin    int      `help:"Minimum pause before each request, in seconds" default:"-1" name:"delay-min"`
	DelayMax    int      `help:"Maximum pause before each request, in seconds" default:"-1" name:"delay-max"`
	Verbose     bool     `help:"Enable debug logging" short:"v"`
	Strict      bool     `help:"Exit non-zero when any post or category failed"`
	NoProgress  bool     `help:"Disable the progress display" name:"no-progress"`
}

func main() {
	var flags CLIFlags

	kong.Parse(&flags,
		kong.Name("blogpdf"),
		kong.Description("Archive every post of a paginated blog as PDF files."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, flags, os.Stdout, os.Stderr, os.LookupEnv)
	stop()
	os.Exit(code)
}

// run executes one archive run and returns the process exit code
func run(ctx context.Context, flags CLIFlags, stdout, stderr io.Writer, lookup func(string) (string, bool)) int {
	cfg, err := buildConfig(flags, lookup)
	if err != nil {
		newLogger(stderr, flags.Verbose, false).Error("Invalid configuration", "err", err)
		return exitFailure
	}

	showProgress := !flags.NoProgress && !cfg.Verbose && isTerminal(stderr)
	logger := newLogger(stderr, cfg.Verbose, showProgress)

	renderer, closeRenderer, err := newRenderer(cfg)
	if err != nil {
		logger.Error("Failed to start renderer", "renderer", cfg.Renderer, "err", err)
		return exitFailure
	}
	defer closeRenderer()

	c, err := crawler.New(*cfg, renderer,
		crawler.WithLogger(logger),
		crawler.WithReporter(progress.New(stderr, showProgress)),
	)
	if err != nil {
		logger.Error("Failed to create crawler", "err", err)
		return exitFailure
	}

	logger.Info("Starting archive", "root", cfg.RootURL, "output", cfg.OutputDir, "renderer", cfg.Renderer)
	start := time.Now()
	summary, err := c.Run(ctx)

	if len(summary.Categories) > 0 {
		fmt.Fprintln(stdout, progress.RenderSummary(summary))
	}

	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("Interrupted, rerun to resume", "elapsed", time.Since(start).Round(time.Second))
		return exitInterrupted
	case err != nil:
		logger.Error("Archive failed", "err", err)
		return exitFailure
	}

	logger.Info("Archive finished", "elapsed", time.Since(start).Round(time.Second))
	if flags.Strict && summary.HasFailures() {
		return exitFailure
	}
	return exitOK
}

// buildConfig layers defaults, the configuration file, the environment
// and finally the flags
func buildConfig(flags CLIFlags, lookup func(string) (string, bool)) (*config.Configuration, error) {
	if err := config.LoadDotEnv(flags.EnvFile); err != nil {
		return nil, err
	}

	path, err := config.FindConfigFile(flags.Config)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(lookup)
	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides config with command line flags if provided
func applyFlags(cfg *config.Configuration, flags CLIFlags) {
	if flags.Root != "" {
		cfg.RootURL = flags.Root
	}
	if flags.Output != "" {
		cfg.OutputDir = flags.Output
	}
	if flags.UserAgent != "" {
		cfg.UserAgent = flags.UserAgent
	}
	if flags.Exclude != nil {
		cfg.ExcludeLabels = flags.Exclude
	}
	if flags.Renderer != "" {
		cfg.Renderer = flags.Renderer
	}
	if flags.Wkhtmltopdf != "" {
		cfg.WkhtmltopdfPath = flags.Wkhtmltopdf
	}
	if flags.Chrome != "" {
		cfg.ChromePath = flags.Chrome
	}
	if flags.DelayMin >= 0 {
		cfg.DelayMin = flags.DelayMin
	}
	if flags.DelayMax >= 0 {
		cfg.DelayMax = flags.DelayMax
	}
	if flags.Verbose {
		cfg.Verbose = true
	}
}

func newRenderer(cfg *config.Configuration) (crawler.Renderer, func(), error) {
	switch cfg.Renderer {
	case config.RendererWkhtmltopdf:
		return render.NewWkhtmltopdf(cfg.WkhtmltopdfPath, cfg.RenderTimeout), func() {}, nil
	default:
		chrome, err := render.NewChrome(render.ChromeOptions{
			ExecPath: cfg.ChromePath,
			Timeout:  cfg.RenderTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return chrome, chrome.Close, nil
	}
}

// newLogger logs to w. While the progress display is drawn only
// warnings and errors are logged.
func newLogger(w io.Writer, verbose, quiet bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case verbose:
		level = log.DebugLevel
	case quiet:
		level = log.WarnLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
