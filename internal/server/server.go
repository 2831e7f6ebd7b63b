// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server serves articles from a dump over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ianlewis/go-wikidump"
	"github.com/ianlewis/go-wikidump/archive"
	"github.com/ianlewis/go-wikidump/index"
	"github.com/ianlewis/go-wikidump/internal/resource"
	"github.com/ianlewis/go-wikidump/internal/template"
	"github.com/ianlewis/go-wikidump/render"
)

const (
	articleShell = "article.html"
	searchShell  = "search.html"

	shutdownTimeout = 5 * time.Second
)

// Library is the set of dump operations the server needs. It is implemented
// by *wikidump.Dump.
type Library interface {
	Lookup(title string) (index.Entry, error)
	Search(query string, n int) []index.Entry
	Article(e index.Entry) (*archive.Article, error)
	Render(a *archive.Article) string
}

// Options are options for a Server.
type Options struct {
	// Resources holds the page shells and static assets. Nil means
	// resource.Embedded().
	Resources *resource.Table

	// SearchLimit is the maximum number of search results. Zero means
	// index.MaxResults.
	SearchLimit int

	// Logger receives request logs. Nil discards them.
	Logger *slog.Logger
}

// Server routes requests to a Library.
type Server struct {
	lib       Library
	resources *resource.Table
	limit     int
	logger    *slog.Logger
	mux       *http.ServeMux
}

// New returns a new Server for lib.
func New(lib Library, opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}

	s := &Server{
		lib:       lib,
		resources: opts.Resources,
		limit:     opts.SearchLimit,
		logger:    opts.Logger,
		mux:       http.NewServeMux(),
	}
	if s.resources == nil {
		s.resources = resource.Embedded()
	}
	if s.limit <= 0 || s.limit > index.MaxResults {
		s.limit = index.MaxResults
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.mux.HandleFunc("GET /article/{title...}", s.handleArticle)
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("GET /res/{name...}", s.handleResource)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("/", notFound)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves HTTP on addr until ctx is done and then shuts the
// server down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}

// Serve serves HTTP on l until ctx is done and then shuts the server down.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(l)
	}()
	s.logger.Info("server started", "address", l.Addr().String())

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/search?q=", http.StatusFound)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	if title == "" {
		notFound(w, r)
		return
	}

	start := time.Now()
	e, err := s.lib.Lookup(title)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	locate := time.Since(start)

	start = time.Now()
	a, err := s.lib.Article(e)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	extract := time.Since(start)

	start = time.Now()
	body := s.lib.Render(a)
	rendered := time.Since(start)

	s.logger.Info("article",
		"path", r.URL.Path,
		"id", a.ID,
		"locate", locate,
		"extract", extract,
		"render", rendered,
	)

	s.page(w, r, articleShell, template.Context{
		"title": html.EscapeString(a.Title),
		"body":  body,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		notFound(w, r)
		return
	}
	query := q.Get("q")

	start := time.Now()
	entries := s.lib.Search(query, s.limit)
	s.logger.Info("search",
		"query", query,
		"results", len(entries),
		"locate", time.Since(start),
	)

	s.page(w, r, searchShell, template.Context{
		"query":   html.EscapeString(query),
		"results": results(entries),
	})
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resources.Find(r.PathValue("name"))
	if !ok {
		notFound(w, r)
		return
	}
	w.Header().Set("Content-Type", res.MIMEType)
	_, _ = w.Write(res.Data)
}

// page writes the named shell with ctx substituted.
func (s *Server) page(w http.ResponseWriter, r *http.Request, shell string, ctx template.Context) {
	res, ok := s.resources.Find(shell)
	if !ok {
		s.fail(w, r, fmt.Errorf("missing resource %q", shell))
		return
	}
	w.Header().Set("Content-Type", res.MIMEType)
	_, _ = io.WriteString(w, template.Execute(res.String(), ctx))
}

// fail writes the response for err. Unknown titles and articles missing from
// their block are not found. Anything else is an internal error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, wikidump.ErrNotFound) || errors.Is(err, archive.ErrArticleNotFound) {
		s.logger.Debug("not found", "path", r.URL.Path, "error", err)
		notFound(w, r)
		return
	}
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "not found", http.StatusNotFound)
}

// results renders search results as list items linking to each article.
func results(entries []index.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(`<li><a href="`)
		b.WriteString(html.EscapeString(render.ArticleURL(e.Title)))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(e.Title))
		b.WriteString("</a></li>\n")
	}
	return b.String()
}
