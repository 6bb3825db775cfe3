// Package server exposes a built depth plot over HTTP.
//
// The server holds one plot for its lifetime. Clients fetch rendered
// artifacts, look up the artwork behind a block id and toggle block
// selection; selection changes show up in every artifact rendered after
// them.
//
//	GET  /healthz
//	GET  /plot.{format}              json, svg, html, png, dot or graphviz
//	GET  /blocks
//	GET  /blocks/{id}
//	PUT  /blocks/{id}/selection      {"color": "#rrggbb", "selected": true}
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/observability"
	"github.com/matzehuels/depthplot/pkg/pipeline"
	"github.com/matzehuels/depthplot/pkg/render/sink"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// shutdownTimeout bounds graceful shutdown in ListenAndServe.
const shutdownTimeout = 5 * time.Second

// Server serves one plot. Handlers serialize access to it with mu; the
// builder itself does no locking.
type Server struct {
	mu     sync.Mutex
	res    *pipeline.Result
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New creates a server for a built result. opts controls rendering of the
// /plot endpoints; its formats are ignored.
func New(res *pipeline.Result, opts pipeline.Options, logger *log.Logger) (*Server, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		res:    res,
		opts:   opts,
		logger: logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/plot.{format}", s.handlePlot)
	r.Route("/blocks", func(r chi.Router) {
		r.Get("/", s.handleBlocks)
		r.Get("/{id}", s.handleBlock)
		r.Put("/{id}/selection", s.handleSelection)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe reports requests to the registered HTTP hooks, keyed by route
// pattern rather than path.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

type healthResponse struct {
	Status string `json:"status"`
	Blocks int    `json:"blocks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := s.res.Plot.Len()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Blocks: n})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	format, err := sink.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	data, err := pipeline.RenderFormat(r.Context(), s.res, format, s.opts)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type blockResponse struct {
	ID       string         `json:"id"`
	Style    string         `json:"style"`
	Color    string         `json:"color"`
	Opacity  float64        `json:"opacity"`
	Selected bool           `json:"selected"`
	Record   artwork.Record `json:"record"`
}

func newBlockResponse(b depth.Block) blockResponse {
	return blockResponse{
		ID:       b.Mesh.ID().String(),
		Style:    b.Mesh.Name,
		Color:    b.Mesh.Material.Color.Hex(),
		Opacity:  b.Mesh.Material.Opacity,
		Selected: b.Mesh.Material.Opacity >= depth.SelectedOpacity,
		Record:   b.Record,
	}
}

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	blocks := s.res.Plot.Blocks()
	out := make([]blockResponse, len(blocks))
	for i, b := range blocks {
		out[i] = newBlockResponse(b)
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBlock(w http.ResponseWriter, r *http.Request) {
	id, err := blockID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.mu.Lock()
	b, ok := s.block(id)
	var out blockResponse
	if ok {
		out = newBlockResponse(b)
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no block with id %s", id))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type selectionRequest struct {
	// Color is optional; empty restores the palette color of the block's
	// style.
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	id, err := blockID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode selection"))
		return
	}

	var color scene.Color
	if req.Color != "" {
		if color, err = scene.ParseColor(req.Color); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	s.mu.Lock()
	b, ok := s.block(id)
	var out blockResponse
	if ok {
		if req.Color == "" {
			color, _ = s.res.Plot.Palette().Lookup(b.Mesh.Name)
		}
		s.res.Plot.SetSelected(b.Mesh, color, req.Selected)
		out = newBlockResponse(b)
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no block with id %s", id))
		return
	}
	s.logger.Debug("selection changed", "id", id, "selected", req.Selected, "color", out.Color)
	writeJSON(w, http.StatusOK, out)
}

// block must be called with mu held.
func (s *Server) block(id uuid.UUID) (depth.Block, bool) {
	rec, ok := s.res.Plot.Lookup(id)
	if !ok {
		return depth.Block{}, false
	}
	m, _ := s.res.Plot.Block(id)
	return depth.Block{Mesh: m, Record: rec}, true
}

func blockID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid block id %q", raw)
	}
	return id, nil
}
