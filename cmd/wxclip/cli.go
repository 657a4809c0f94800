package main

import (
	"context"
	"io"
	"time"

	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/batch"
	"github.com/wxclip/wxclip/web"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Settings wxclip.SettingsService

	// Runner executes grab batches. main wires the real pipeline from
	// the grab flags; tests substitute mock-backed runners.
	Runner *batch.Runner

	// FeedSource and SitemapSource expand --feed and --sitemap
	// references into article URLs.
	FeedSource    wxclip.URLSource
	SitemapSource wxclip.URLSource

	// NewRunner builds per-request pipelines for the web server.
	NewRunner web.RunnerFactory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Grab  GrabCmd  `cmd:"" help:"Extract articles to local files"`
	Serve ServeCmd `cmd:"" help:"Serve the browser front-end"`
}

// GrabCmd is the "grab" subcommand.
type GrabCmd struct {
	URL            string        `arg:"" optional:"" help:"Article URL to extract"`
	Input          string        `short:"i" help:"File with one URL per line"`
	CSV            bool          `help:"Treat the input file as CSV with the URL in the first column"`
	Feed           string        `help:"RSS/Atom feed URL to expand into article URLs"`
	Sitemap        string        `help:"Site URL whose sitemap lists the articles"`
	Outdir         string        `short:"o" default:"output" help:"Output directory"`
	Format         string        `short:"f" default:"md" help:"Output format: md, html or json"`
	DownloadImages bool          `help:"Download images and rewrite references to local files"`
	Workers        int           `short:"c" default:"4" help:"Concurrent extraction limit"`
	Timeout        time.Duration `short:"t" default:"15s" help:"Fetch timeout per page"`
	RPS            float64       `name:"rps" help:"Max requests per second per host (0 disables pacing)"`
	Engine         string        `default:"wechat" help:"Extraction engine: wechat or generic"`
	Verbose        bool          `short:"v" help:"Log each fetch and discovery"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8873" help:"HTTP listen address"`
	Base string `default:"outputs" help:"Directory containing all output files"`
}
