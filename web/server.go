// Package web provides a small browser front-end over the batch
// extraction pipeline. It serves a submission form, runs batches
// synchronously, and exposes the produced artifacts for download.
// All file access is contained under a single base directory.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wxclip/wxclip"
)

// shutdownTimeout bounds how long Close waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server serves the front-end over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, e.g. ":8873".
	Addr string

	// BaseDir contains every output directory and downloadable file.
	// Requests that resolve outside it are rejected.
	BaseDir string

	Logger *slog.Logger

	// NewRunner builds the pipeline for one request's configuration.
	NewRunner RunnerFactory

	Settings wxclip.SettingsService
}

// NewServer creates a Server with its routes registered. The exported
// fields must be set before Open.
func NewServer() *Server {
	s := &Server{
		router: chi.NewRouter(),
		server: &http.Server{},
		Logger: slog.Default(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/", s.handleIndex)
	s.router.Post("/extract", s.handleExtract)
	s.router.Get("/download/*", s.handleDownload)
	s.router.Get("/settings", s.handleSettingsView)
	s.router.Post("/settings", s.handleSettingsSave)

	s.server.Handler = s
	return s
}

// ServeHTTP makes the server usable as a plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open begins listening on Addr and serves requests until Close.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "listen on %s: %s", s.Addr, err)
	}
	go func() {
		_ = s.server.Serve(s.ln)
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL the server listens on. It is only valid
// after Open.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// logRequests logs each request through the configured slog logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(begin),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// resolvePath joins a user-supplied relative path under BaseDir and
// rejects anything that escapes it.
func (s *Server) resolvePath(rel string) (string, error) {
	base, err := filepath.Abs(s.BaseDir)
	if err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "resolve base directory: %s", err)
	}

	joined, err := filepath.Abs(filepath.Join(base, filepath.FromSlash(rel)))
	if err != nil {
		return "", wxclip.Errorf(wxclip.EINVALID, "invalid path %q", rel)
	}

	if joined != base && !strings.HasPrefix(joined, base+string(filepath.Separator)) {
		return "", wxclip.Errorf(wxclip.EINVALID, "path %q escapes the output area", rel)
	}
	return joined, nil
}

// errStatus maps application error codes onto HTTP status codes.
func errStatus(err error) int {
	switch wxclip.ErrorCode(err) {
	case wxclip.EINVALID:
		return http.StatusBadRequest
	case wxclip.ENOTFOUND:
		return http.StatusNotFound
	case wxclip.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an application error as a plain HTTP error.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	http.Error(w, wxclip.ErrorMessage(err), errStatus(err))
}
