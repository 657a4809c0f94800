package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wxclip/wxclip"
	"github.com/wxclip/wxclip/batch"
)

// ReportFileName is the per-batch summary written into the output
// directory alongside the artifacts.
const ReportFileName = "results.json"

// DefaultWorkers bounds concurrency for form submissions that leave
// the field empty.
const DefaultWorkers = 4

// DefaultTimeoutSeconds is the per-fetch timeout for form submissions
// that leave the field empty.
const DefaultTimeoutSeconds = 15

// RunConfig carries one request's pipeline configuration.
type RunConfig struct {
	Outdir         string
	Format         wxclip.Format
	DownloadImages bool
	Workers        int
	Timeout        time.Duration
}

// RunnerFactory builds a batch Runner for one request. The factory
// owns the wiring of concrete fetchers, extractors, and writers.
type RunnerFactory func(cfg RunConfig) (*batch.Runner, error)

// Report is the caller-facing summary of one extraction batch. It is
// rendered as the results page and persisted as results.json in the
// output directory.
type Report struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Format    string        `json:"format"`
	Outdir    string        `json:"outdir"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []ReportEntry `json:"results"`
}

// ReportEntry is the terminal outcome for one URL. Path is relative
// to the server's base directory so it doubles as a download link.
type ReportEntry struct {
	URL      string   `json:"url"`
	Status   string   `json:"status"`
	Stage    string   `json:"stage"`
	Title    string   `json:"title,omitempty"`
	Path     string   `json:"path,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	outdir := ""
	if s.Settings != nil {
		if settings, err := s.Settings.Load(); err == nil {
			outdir = settings.DefaultOutdir
		}
	}
	s.render(w, "index.html", struct {
		DefaultOutdir  string
		DefaultWorkers int
		DefaultTimeout int
	}{outdir, DefaultWorkers, DefaultTimeoutSeconds})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, wxclip.Errorf(wxclip.EINVALID, "parse form: %s", err))
		return
	}

	urls := collectURLs(r.PostForm.Get("urls"), r.PostForm.Get("url"))
	if len(urls) == 0 {
		s.respondError(w, wxclip.Errorf(wxclip.EINVALID, "no URLs submitted"))
		return
	}

	format, err := wxclip.ParseFormat(formValue(r, "format", string(wxclip.FormatMarkdown)))
	if err != nil {
		s.respondError(w, err)
		return
	}
	workers, err := formInt(r, "workers", DefaultWorkers)
	if err != nil {
		s.respondError(w, err)
		return
	}
	timeoutSec, err := formInt(r, "timeout", DefaultTimeoutSeconds)
	if err != nil {
		s.respondError(w, err)
		return
	}

	relOutdir := formValue(r, "outdir", "output")
	outdir, err := s.resolvePath(relOutdir)
	if err != nil {
		s.respondError(w, err)
		return
	}

	cfg := RunConfig{
		Outdir:         outdir,
		Format:         format,
		DownloadImages: r.PostForm.Get("download_images") != "",
		Workers:        workers,
		Timeout:        time.Duration(timeoutSec) * time.Second,
	}

	runner, err := s.NewRunner(cfg)
	if err != nil {
		s.respondError(w, err)
		return
	}

	result, err := runner.Run(r.Context(), urls, nil)
	if err != nil {
		s.respondError(w, err)
		return
	}

	report := s.buildReport(result, format)
	report.Outdir = relPath(s.BaseDir, outdir)

	if err := writeReport(outdir, report); err != nil {
		s.respondError(w, err)
		return
	}

	s.render(w, "results.html", report)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolvePath(chi.URLParam(r, "*"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	http.ServeFile(w, r, path)
}

// buildReport converts a batch result into the serializable report.
func (s *Server) buildReport(result *batch.Result, format wxclip.Format) *Report {
	report := &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Format:    string(format),
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Results:   make([]ReportEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := ReportEntry{
			URL:      res.URL,
			Status:   "done",
			Stage:    string(res.Stage),
			Title:    res.Title,
			Warnings: res.Warnings,
		}
		if res.Failed() {
			entry.Status = "failed"
			entry.Error = wxclip.ErrorMessage(res.Err)
		}
		if res.Path != "" {
			entry.Path = relPath(s.BaseDir, res.Path)
		}
		report.Results = append(report.Results, entry)
	}
	return report
}

// writeReport persists the report as results.json in the output
// directory.
func writeReport(outdir string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "marshal report: %s", err)
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "create output directory: %s", err)
	}
	path := filepath.Join(outdir, ReportFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "write report %s: %s", path, err)
	}
	return nil
}

// collectURLs merges the textarea list with the single-URL field.
func collectURLs(list, single string) []string {
	urls, _ := batch.ReadURLList(strings.NewReader(list), false)
	single = strings.TrimSpace(single)
	if single != "" && !slices.Contains(urls, single) {
		urls = append(urls, single)
	}
	return urls
}

// relPath converts an absolute path under base into a slash-separated
// relative path suitable for download links.
func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func formValue(r *http.Request, key, fallback string) string {
	v := strings.TrimSpace(r.PostForm.Get(key))
	if v == "" {
		return fallback
	}
	return v
}

func formInt(r *http.Request, key string, fallback int) (int, error) {
	v := strings.TrimSpace(r.PostForm.Get(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, wxclip.Errorf(wxclip.EINVALID, "invalid %s %q", key, v)
	}
	return n, nil
}
