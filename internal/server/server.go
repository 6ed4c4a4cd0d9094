// Package server hosts exported artifacts over HTTP.
//
// During a debugging session the exports are regenerated after every step;
// pointing a browser at this server beats reopening files by hand. The
// index page lists everything in the artifact directory and refreshes
// itself so a re-exported table shows up without interaction.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves one artifact directory.
type Server struct {
	dir     string
	logger  *log.Logger
	refresh time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a logger for request-level debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRefresh overrides the index auto-refresh interval.
func WithRefresh(d time.Duration) Option {
	return func(s *Server) { s.refresh = d }
}

// New creates a server over the given artifact directory.
func New(dir string, opts ...Option) *Server {
	s := &Server{
		dir:     dir,
		logger:  log.New(os.Stderr),
		refresh: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the HTTP routes: an index at / and raw artifacts under
// /files/.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Handle("/files/*", http.StripPrefix("/files/",
		http.FileServer(http.Dir(s.dir))))

	return r
}

// ListenAndServe blocks until the context is canceled, then shuts the
// server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Serving artifacts", "addr", addr, "dir", s.dir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		http.Error(w, "cannot read artifact directory", http.StatusInternalServerError)
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>gdbviz artifacts</title>\n")
	fmt.Fprintf(w, `<meta http-equiv="refresh" content="%d">`+"\n", int(s.refresh.Seconds()))
	fmt.Fprintf(w, "</head><body>\n<h1>%s</h1>\n<ul>\n", html.EscapeString(filepath.Base(s.dir)))
	for _, name := range names {
		fmt.Fprintf(w, `<li><a href="/files/%s">%s</a></li>`+"\n",
			html.EscapeString(name), html.EscapeString(name))
	}
	fmt.Fprintf(w, "</ul>\n</body></html>\n")
}
