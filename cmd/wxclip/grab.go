package main

import (
	"fmt"
	"os"

	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/batch"
	"github.com/wxclip/wxclip/bloom"
)

// urlDisplayWidth bounds URL width in progress lines.
const urlDisplayWidth = 48

// Run executes the grab command.
func (c *GrabCmd) Run(deps *Dependencies) error {
	urls, err := c.collectURLs(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wxclip.ErrorMessage(err))
		return err
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Extracting %d articles to %s\n", event.Total, c.Outdir)
		case batch.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n",
				event.Completed, event.Total, batch.Truncate(event.URL, urlDisplayWidth))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %v\n",
				event.Completed, event.Total, batch.Truncate(event.URL, urlDisplayWidth), event.Error)
		case batch.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wxclip.ErrorMessage(err))
		return err
	}

	for _, res := range result.Results {
		for _, warning := range res.Warnings {
			fmt.Fprintf(deps.Stderr, "  warn %s: %s\n", batch.Truncate(res.URL, urlDisplayWidth), warning)
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d articles to %s (%s)\n",
		result.Succeeded, c.Outdir, batch.FormatBytes(artifactBytes(result)))

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d articles failed", result.Failed, len(urls))
	}
	return nil
}

// collectURLs gathers article URLs from the positional argument, the
// input file, and feed or sitemap discovery, de-duplicated in
// first-appearance order.
func (c *GrabCmd) collectURLs(deps *Dependencies) ([]string, error) {
	var urls []string

	if c.URL != "" {
		urls = append(urls, c.URL)
	}

	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, wxclip.Errorf(wxclip.EINVALID, "open %s: %s", c.Input, err)
		}
		fromFile, err := batch.ReadURLList(f, c.CSV)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	if c.Feed != "" {
		discovered, err := deps.FeedSource.Discover(deps.Ctx, c.Feed)
		if err != nil {
			return nil, err
		}
		urls = append(urls, discovered...)
	}

	if c.Sitemap != "" {
		discovered, err := deps.SitemapSource.Discover(deps.Ctx, c.Sitemap)
		if err != nil {
			return nil, err
		}
		urls = append(urls, discovered...)
	}

	seen := bloom.NewDefaultFilter()
	deduped := urls[:0]
	for _, u := range urls {
		if !seen.Seen(u) {
			deduped = append(deduped, u)
		}
	}

	if len(deduped) == 0 {
		return nil, wxclip.Errorf(wxclip.EINVALID,
			"no URLs to extract: pass a URL or use --input, --feed or --sitemap")
	}
	return deduped, nil
}

// artifactBytes sums the on-disk size of the written artifacts.
func artifactBytes(result *batch.Result) int {
	total := 0
	for _, res := range result.Results {
		if res.Path == "" {
			continue
		}
		if info, err := os.Stat(res.Path); err == nil {
			total += int(info.Size())
		}
	}
	return total
}
