// Package server exposes the layout engine over HTTP.
//
// Routes:
//
//	GET  /healthz              liveness and build info
//	GET  /v1/defaults          the default preset
//	GET  /v1/presets           stored preset names
//	GET  /v1/presets/{name}    one stored preset
//	POST /v1/layout            placements and bounds for a preset
//	POST /v1/preview           SVG preview for a preset
//
// Layout and preview requests carry either an inline preset, whose missing
// keys fall back to the defaults, or the name of a stored preset. The seed is
// optional; responses echo the seed used so a layout can be reproduced.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/benjaminghys/Tile-Generator-Maya/pkg/buildinfo"
	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/observability"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preset"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preview"
)

const (
	// MaxTiles caps columns*rows per request.
	MaxTiles = 10000

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server serves layouts and previews.
type Server struct {
	router chi.Router
	logger *log.Logger
	store  preset.Store
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore enables named presets.
func WithStore(st preset.Store) Option {
	return func(s *Server) { s.store = st }
}

// New builds a server and its routes.
func New(opts ...Option) *Server {
	s := &Server{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Get("/presets", s.handleListPresets)
		r.Get("/presets/{name}", s.handleGetPreset)
		r.Post("/layout", s.handleLayout)
		r.Post("/preview", s.handlePreview)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", dur.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preset.Default())
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, map[string]any{"presets": []string{}})
		return
	}
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": names})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.store == nil {
		s.writeError(w, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset %q not found", name))
		return
	}
	p, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// layoutRequest is the body of /v1/layout and /v1/preview.
type layoutRequest struct {
	Preset json.RawMessage `json:"preset,omitempty"`
	Name   string          `json:"name,omitempty"`
	Seed   *uint64         `json:"seed,omitempty"`
	Labels bool            `json:"labels,omitempty"`
}

// Bounds is the axis-aligned extent of a layout.
type Bounds struct {
	Min layout.Vec3 `json:"min"`
	Max layout.Vec3 `json:"max"`
}

// LayoutResponse is the body returned by /v1/layout.
type LayoutResponse struct {
	Seed       uint64             `json:"seed"`
	Columns    int                `json:"columns"`
	Rows       int                `json:"rows"`
	Placements []layout.Placement `json:"placements"`
	Bounds     Bounds             `json:"bounds"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	p, seed, _, err := s.compute(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	placements, err := layout.Layout(p, layout.NewSeeded(seed))
	if err != nil {
		s.writeError(w, err)
		return
	}
	lo, hi := layout.Bounds(placements)
	writeJSON(w, http.StatusOK, LayoutResponse{
		Seed:       seed,
		Columns:    p.Columns,
		Rows:       p.Rows,
		Placements: placements,
		Bounds:     Bounds{Min: lo, Max: hi},
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p, seed, req, err := s.compute(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	placements, err := layout.Layout(p, layout.NewSeeded(seed))
	if err != nil {
		s.writeError(w, err)
		return
	}
	svg, err := preview.Render(r.Context(), placements, preview.Options{Labels: req.Labels})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Tilegen-Seed", formatSeed(seed))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// compute decodes a layout request into a validated parameter set and seed.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (*params.Set, uint64, layoutRequest, error) {
	var req layoutRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, req, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "decode request")
	}

	pr, err := s.resolve(r.Context(), req)
	if err != nil {
		return nil, 0, req, err
	}
	p, err := pr.Params()
	if err != nil {
		return nil, 0, req, err
	}
	if p.Columns > MaxTiles || p.Rows > MaxTiles || p.Columns*p.Rows > MaxTiles {
		return nil, 0, req, tgerrors.New(tgerrors.ErrCodeInvalidDimension,
			"%d x %d grid exceeds %d tiles", p.Columns, p.Rows, MaxTiles)
	}

	seed := layout.NewRandom().Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}
	return p, seed, req, nil
}

func (s *Server) resolve(ctx context.Context, req layoutRequest) (*preset.Preset, error) {
	switch {
	case len(req.Preset) > 0 && req.Name != "":
		return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "set either preset or name, not both")
	case req.Name != "":
		if s.store == nil {
			return nil, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset %q not found", req.Name)
		}
		return s.store.Get(ctx, req.Name)
	case len(req.Preset) > 0:
		p := preset.Default()
		if err := json.Unmarshal(req.Preset, p); err != nil {
			return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidPreset, err, "decode preset")
		}
		return p, nil
	default:
		return preset.Default(), nil
	}
}
