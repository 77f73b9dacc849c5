package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/observability"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// rotationBase is the base orientation added to regenerated X and Y rotations.
const rotationBase = 90.0

// Session tracks the tiles created in a host scene.
type Session struct {
	scene  SceneAPI
	logger *log.Logger
	tiles  []Tile
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. Without it the session does not log.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTiles restores a live tile list, e.g. from a saved scene.
func WithTiles(tiles []Tile) Option {
	return func(s *Session) { s.tiles = append([]Tile(nil), tiles...) }
}

// New creates a session bound to scene.
func New(scene SceneAPI, opts ...Option) *Session {
	s := &Session{
		scene:  scene,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tiles returns a copy of the live tile list in creation order.
func (s *Session) Tiles() []Tile {
	return append([]Tile(nil), s.tiles...)
}

// Len returns the number of live tiles.
func (s *Session) Len() int { return len(s.tiles) }

// Generate lays out a new grid and creates it in the scene. It returns the
// number of tiles created by this call.
//
// The layout is computed before the scene is touched, so configuration errors
// leave the scene unchanged. When p.ClearBeforeGenerate is set the previous
// tiles are cleared first.
func (s *Session) Generate(ctx context.Context, p *params.Set, rng layout.RandomSource) (created int, err error) {
	start := time.Now()
	observability.Session().OnGenerateStart(ctx, p.Columns, p.Rows)
	defer func() {
		observability.Session().OnGenerateComplete(ctx, created, time.Since(start), err)
	}()

	placements, err := layout.Layout(p, rng)
	if err != nil {
		return 0, err
	}

	if p.ClearBeforeGenerate {
		if _, err := s.Clear(ctx); err != nil {
			return 0, err
		}
	}

	for _, pl := range placements {
		h, err := s.scene.CreateBox(pl.Size)
		if err != nil {
			return created, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "create tile (%d,%d)", pl.Column, pl.Row)
		}
		s.tiles = append(s.tiles, Tile{Handle: h, Placement: pl})
		created++

		if err := s.scene.Move(h, pl.Position); err != nil {
			return created, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "move %s", h)
		}
		if err := s.scene.Rotate(h, pl.Rotation); err != nil {
			return created, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "rotate %s", h)
		}
		s.logger.Debug("created tile", "handle", h, "column", pl.Column, "row", pl.Row)
	}

	s.logger.Info("generated tiles", "count", created, "columns", p.Columns, "rows", p.Rows)
	return created, nil
}

// Clear deletes every live tile that still exists in the scene and empties the
// list. Tiles deleted externally are dropped without a delete call. It returns
// the number of objects deleted.
//
// On a delete failure the remaining tiles (including the failed one) stay
// tracked.
func (s *Session) Clear(ctx context.Context) (int, error) {
	removed := 0
	for i, t := range s.tiles {
		if !s.scene.Exists(t.Handle) {
			s.logger.Debug("tile already gone", "handle", t.Handle)
			continue
		}
		if err := s.scene.Delete(t.Handle); err != nil {
			s.tiles = s.tiles[i:]
			observability.Session().OnClear(ctx, removed)
			return removed, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "delete %s", t.Handle)
		}
		removed++
	}
	s.tiles = nil
	observability.Session().OnClear(ctx, removed)
	if removed > 0 {
		s.logger.Debug("cleared tiles", "count", removed)
	}
	return removed, nil
}

// Report summarises a regenerate call.
type Report struct {
	// Updated counts objects whose size target resolved.
	Updated int
	// Writes counts successful attribute writes.
	Writes int
	// Skipped lists selected objects without a size target.
	Skipped []Handle
	// Failed lists objects with at least one failed write.
	Failed []Handle
}

// Regenerate draws new values for every object in selection. Each object gets
// its own independent draw of size, height and rotation; channels kept by p
// are not written. Size channels go to the object's size target, the others to
// the object itself. X and Y rotations are written with a 90 degree base
// offset.
//
// Objects without a size target are skipped. Write failures do not stop the
// call; they are joined into the returned error, each carrying the EXTERNAL
// code.
func (s *Session) Regenerate(ctx context.Context, p *params.Set, rng layout.RandomSource, selection []Handle) (report Report, err error) {
	start := time.Now()
	defer func() {
		observability.Session().OnRegenerateComplete(ctx, report.Updated, len(report.Skipped), time.Since(start), err)
	}()

	var errs []error
	for _, h := range selection {
		target, ok := s.scene.ResolveSizeTarget(h)
		if !ok {
			s.logger.Warn("skipping object without size target", "handle", h, "code", tgerrors.ErrCodeUnresolvedTarget)
			report.Skipped = append(report.Skipped, h)
			continue
		}

		values := sample(p, rng)
		failed := false
		for _, c := range params.Channels() {
			if p.Keeps(c) {
				continue
			}
			dst, v := h, values[c]
			if c.IsSize() {
				dst = target
			}
			if c == params.RotateX || c == params.RotateY {
				v += rotationBase
			}
			if werr := s.scene.SetAttribute(dst, c, v); werr != nil {
				s.logger.Error("attribute write failed", "handle", dst, "channel", c, "err", werr)
				errs = append(errs, tgerrors.Wrap(tgerrors.ErrCodeExternal, werr, "set %s on %s", c, dst))
				failed = true
				continue
			}
			report.Writes++
		}
		if failed {
			report.Failed = append(report.Failed, h)
		}
		report.Updated++
	}

	s.logger.Info("Finished re-generating values", "objects", report.Updated, "skipped", len(report.Skipped))
	return report, errors.Join(errs...)
}

// RegenerateSelection reads the current selection from sel and regenerates it.
func (s *Session) RegenerateSelection(ctx context.Context, p *params.Set, rng layout.RandomSource, sel SelectionAPI) (Report, error) {
	handles, err := sel.CurrentSelection()
	if err != nil {
		return Report{}, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "read selection")
	}
	return s.Regenerate(ctx, p, rng, handles)
}

// sample draws one value per channel, in channel order.
func sample(p *params.Set, rng layout.RandomSource) [params.ChannelCount]float64 {
	var v [params.ChannelCount]float64
	for _, c := range params.Channels() {
		v[c] = layout.Uniform(rng, p.Range(c.Source()))
	}
	return v
}
