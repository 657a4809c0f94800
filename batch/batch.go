// Package batch orchestrates article extraction across many URLs.
// It runs the fetch, extract, image resolution, and render stages for
// each URL with bounded concurrency, isolating per-URL failures and
// reporting progress as URLs reach a terminal state.
package batch

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/wxclip/wxclip"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker count used when none is configured.
const DefaultConcurrency = 4

// Runner runs the extraction pipeline for collections of URLs.
type Runner struct {
	Fetcher     wxclip.Fetcher
	Extractor   wxclip.Extractor
	Resolver    wxclip.ImageResolver // optional; nil skips image resolution
	Renderer    wxclip.Renderer
	Artifacts   wxclip.ArtifactWriter
	Limiter     wxclip.DomainLimiter // optional
	Concurrency int
	RetryDelays []time.Duration
}

// Stage identifies a step of the per-URL pipeline.
type Stage string

const (
	StagePending         Stage = "pending"
	StageFetching        Stage = "fetching"
	StageExtracting      Stage = "extracting"
	StageResolvingImages Stage = "resolving images"
	StageRendering       Stage = "rendering"
	StageDone            Stage = "done"
)

// URLResult is the terminal outcome for one input URL. Stage records
// where the pipeline stopped: StageDone on success, otherwise the
// stage whose error is in Err.
type URLResult struct {
	URL      string
	Stage    Stage
	Title    string
	Path     string
	Warnings []string
	Err      error
}

// Failed reports whether the URL reached a terminal failure.
func (r *URLResult) Failed() bool {
	return r.Err != nil
}

// Result summarizes a batch run. Results preserves the input order of
// URLs regardless of completion order.
type Result struct {
	Succeeded int
	Failed    int
	Results   []URLResult
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// urlOutcome pairs a URLResult with its input position.
type urlOutcome struct {
	position int
	result   URLResult
}

// Run processes every URL through the pipeline and returns a summary.
// A failure in one URL never cancels or blocks the others. The
// progress callback, if provided, receives events as URLs reach a
// terminal state.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return &Result{}, nil
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan urlOutcome, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- r.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]URLResult, len(urls))
	for outcome := range resultCh {
		completed.Add(1)
		results[outcome.position] = outcome.result

		if progress == nil {
			continue
		}
		if outcome.result.Err != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       outcome.result.URL,
				Error:     outcome.result.Err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       outcome.result.URL,
			})
		}
	}

	summary := &Result{Results: results}
	for i := range results {
		if results[i].Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return summary, nil
}

// processURL runs the full pipeline for a single URL.
func (r *Runner) processURL(ctx context.Context, position int, rawURL string) urlOutcome {
	outcome := urlOutcome{
		position: position,
		result:   URLResult{URL: rawURL, Stage: StagePending},
	}
	res := &outcome.result

	res.Stage = StageFetching
	if r.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := r.Limiter.Wait(ctx, u.Host); err != nil {
				res.Err = err
				return outcome
			}
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetryDelays(ctx, rawURL, r.Fetcher.Fetch, nil, delays)
	if err != nil {
		res.Err = err
		return outcome
	}

	res.Stage = StageExtracting
	article, err := r.Extractor.Extract(page.HTML, page.FinalURL)
	if err != nil {
		res.Err = err
		return outcome
	}
	res.Title = article.Title

	if r.Resolver != nil {
		res.Stage = StageResolvingImages
		warnings, err := r.Resolver.Resolve(ctx, article)
		res.Warnings = warnings
		if err != nil {
			res.Err = err
			return outcome
		}
	}

	res.Stage = StageRendering
	data, err := r.Renderer.Render(article)
	if err != nil {
		res.Err = err
		return outcome
	}
	path, err := r.Artifacts.WriteArtifact(article, data, r.Renderer.Extension())
	if err != nil {
		res.Err = err
		return outcome
	}

	res.Path = path
	res.Stage = StageDone
	return outcome
}
