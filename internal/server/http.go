// Package server serves one rendered markdown document to a local browser.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/mdserve/internal/document"
	"github.com/mithrel/mdserve/internal/render"
	"github.com/mithrel/mdserve/internal/segment"
)

const shutdownTimeout = 5 * time.Second

// Server holds the document, its blocks and the pre-rendered page. All of
// it is built once and read-only afterwards.
type Server struct {
	log    *zap.Logger
	doc    *document.Document
	blocks []segment.Block
	page   []byte
	theme  string
}

// New renders the page once; handlers only write prepared bytes.
func New(log *zap.Logger, doc *document.Document, blocks []segment.Block, html *render.HTML, title, theme string) (*Server, error) {
	page, err := html.Page(doc, title, blocks)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, doc: doc, blocks: blocks, page: page, theme: theme}, nil
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", get(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	mux.HandleFunc("/", get(s.handlePage))
	mux.HandleFunc("/raw", get(s.handleRaw))
	mux.HandleFunc("/segments", get(s.handleSegments))
	mux.HandleFunc("/diagram/", get(s.handleDiagram))
	return s.logRequests(mux)
}

func get(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) etag() string {
	return `"` + s.doc.Hash + `"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("ETag", s.etag())
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, s.etag()) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.page)
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("ETag", s.etag())
	_, _ = w.Write([]byte(s.doc.Source))
}

type segmentsResponse struct {
	Path   string          `json:"path"`
	Hash   string          `json:"hash"`
	Blocks []segment.Block `json:"blocks"`
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(segmentsResponse{Path: s.doc.Path, Hash: s.doc.Hash, Blocks: s.blocks})
}

// handleDiagram redirects /diagram/{n} to the live editor and
// /diagram/{n}/image to a rendered SVG.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/diagram/"), "/")
	idxStr, tail, _ := strings.Cut(rest, "/")
	n, err := strconv.Atoi(idxStr)
	diagrams := segment.Diagrams(s.blocks)
	if err != nil || n < 0 || n >= len(diagrams) || (tail != "" && tail != "image") {
		http.NotFound(w, r)
		return
	}
	link := render.LiveURL
	if tail == "image" {
		link = render.InkURL
	}
	u, err := link(diagrams[n].Content, s.theme)
	if err != nil {
		s.log.Error("encode diagram", zap.Int("diagram", n), zap.Error(err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, u, http.StatusFound)
}

// Run serves on l until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, l net.Listener) error {
	srv := &http.Server{Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(l) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.log.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
