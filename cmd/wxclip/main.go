package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/batch"
	"github.com/wxclip/wxclip/fs"
	"github.com/wxclip/wxclip/gofeed"
	"github.com/wxclip/wxclip/goquery"
	"github.com/wxclip/wxclip/htmltomarkdown"
	wxhttp "github.com/wxclip/wxclip/http"
	"github.com/wxclip/wxclip/render"
	wxslog "github.com/wxclip/wxclip/slog"
	"github.com/wxclip/wxclip/trafilatura"
	"github.com/wxclip/wxclip/web"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Settings file path. Set before calling Run().
	SettingsPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		SettingsPath: defaultSettingsPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wxclip"),
		kong.Description("Extract WeChat public account articles to local files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wxclip --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Settings = fs.NewSettingsService(m.SettingsPath)

	// Wire command-specific dependencies based on command
	switch cmd {
	case "grab":
		if err := wireGrab(deps, &cli.Grab); err != nil {
			return err
		}
	case "serve":
		wireServe(deps)
	}

	return kongCtx.Run(deps)
}

// wireGrab validates the grab flags and builds the real pipeline from
// them. Flag errors surface here, before any URL is touched.
func wireGrab(deps *Dependencies, c *GrabCmd) error {
	format, err := wxclip.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(c.Engine)
	if err != nil {
		return err
	}
	if c.Workers < 1 {
		return wxclip.Errorf(wxclip.EINVALID, "workers must be at least 1")
	}
	if c.Timeout <= 0 {
		return wxclip.Errorf(wxclip.EINVALID, "timeout must be positive")
	}
	if err := os.MkdirAll(c.Outdir, 0755); err != nil {
		return wxclip.Errorf(wxclip.EINVALID, "cannot create output directory %s: %s", c.Outdir, err)
	}

	renderer, err := render.New(format, htmltomarkdown.NewConverter())
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}

	fetcher := wxhttp.NewFetcher(wxhttp.WithTimeout(c.Timeout))
	var pageFetcher wxclip.Fetcher = fetcher
	if logger != nil {
		pageFetcher = wxslog.NewLoggingFetcher(fetcher, logger)
	}

	var limiter wxclip.DomainLimiter
	if c.RPS > 0 {
		limiter = batch.NewDomainLimiter(c.RPS)
	}

	var resolver wxclip.ImageResolver
	if c.DownloadImages {
		var opts []fs.ResolverOption
		if limiter != nil {
			opts = append(opts, fs.WithResolverLimiter(limiter))
		}
		resolver = fs.NewResolver(fetcher, fs.NewImageStore(c.Outdir), opts...)
	}

	deps.Runner = &batch.Runner{
		Fetcher:     pageFetcher,
		Extractor:   extractor,
		Resolver:    resolver,
		Renderer:    renderer,
		Artifacts:   fs.NewArtifactWriter(c.Outdir),
		Limiter:     limiter,
		Concurrency: c.Workers,
	}

	deps.FeedSource = gofeed.NewFeedSource()
	deps.SitemapSource = wxhttp.NewSitemapSource(nil)
	if logger != nil {
		deps.FeedSource = wxslog.NewLoggingSource(deps.FeedSource, logger)
		deps.SitemapSource = wxslog.NewLoggingSource(deps.SitemapSource, logger)
	}

	return nil
}

// wireServe installs the per-request pipeline factory the web server
// calls for each submitted batch. The web form always targets public
// account pages, so the factory fixes the wechat engine.
func wireServe(deps *Dependencies) {
	deps.NewRunner = func(cfg web.RunConfig) (*batch.Runner, error) {
		renderer, err := render.New(cfg.Format, htmltomarkdown.NewConverter())
		if err != nil {
			return nil, err
		}

		fetcher := wxhttp.NewFetcher(wxhttp.WithTimeout(cfg.Timeout))

		var resolver wxclip.ImageResolver
		if cfg.DownloadImages {
			resolver = fs.NewResolver(fetcher, fs.NewImageStore(cfg.Outdir))
		}

		return &batch.Runner{
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Resolver:    resolver,
			Renderer:    renderer,
			Artifacts:   fs.NewArtifactWriter(cfg.Outdir),
			Concurrency: cfg.Workers,
		}, nil
	}
}

func newExtractor(engine string) (wxclip.Extractor, error) {
	switch engine {
	case "wechat", "":
		return goquery.NewExtractor(), nil
	case "generic":
		return trafilatura.NewExtractor(), nil
	}
	return nil, wxclip.Errorf(wxclip.EINVALID, "unknown engine %q (supported: wechat, generic)", engine)
}

func defaultSettingsPath() string {
	path, err := fs.DefaultSettingsPath()
	if err != nil {
		return "wxclip.yaml"
	}
	return path
}
