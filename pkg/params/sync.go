package params

import (
	"fmt"
	"strings"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

// Mode selects how a group of fields is configured.
type Mode int

const (
	// Simple configures a group with one value.
	Simple Mode = iota + 1
	// Advanced configures each field of a group with explicit min/max.
	Advanced
)

func (m Mode) String() string {
	switch m {
	case Simple:
		return "simple"
	case Advanced:
		return "advanced"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "simple" or "advanced" (case-insensitive). An empty string
// means Simple.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple":
		return Simple, nil
	case "advanced":
		return Advanced, nil
	default:
		return 0, tgerrors.New(tgerrors.ErrCodeInvalidInput, "unknown mode %q (must be simple or advanced)", s)
	}
}

// Group is one mode selector of the tool window.
type Group int

const (
	GroupTileSize Group = iota
	GroupGaps
	GroupHeight
	GroupRotation
)

func (g Group) String() string {
	switch g {
	case GroupTileSize:
		return "tile size"
	case GroupGaps:
		return "gaps"
	case GroupHeight:
		return "height variation"
	case GroupRotation:
		return "rotation"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// Groups returns every group in window order.
func Groups() []Group {
	return []Group{GroupTileSize, GroupGaps, GroupHeight, GroupRotation}
}

// Fields returns the fields a group's selector controls.
func (g Group) Fields() []Field {
	switch g {
	case GroupTileSize:
		return []Field{TileSizeX, TileSizeY, TileSizeZ}
	case GroupGaps:
		return []Field{GapX, GapY}
	case GroupHeight:
		return []Field{HeightVariation}
	case GroupRotation:
		return []Field{RotationX, RotationY, RotationZ}
	default:
		return nil
	}
}

// UIReader exposes the current widget state of a parameter window.
// Every method is read synchronously during [Set.Sync].
type UIReader interface {
	// Mode returns the selector state of a group.
	Mode(g Group) (Mode, error)
	// Simple returns the single value shown while a group is in simple mode.
	Simple(g Group) (float64, error)
	// Range returns the min/max values shown for f while its group is in advanced mode.
	Range(f Field) (lo, hi float64, err error)
	// Grid returns the requested column and row counts.
	Grid() (columns, rows int, err error)
	// Keep returns the keep-on-regenerate checkbox of c.
	Keep(c Channel) (bool, error)
	// ClearBeforeGenerate returns the clear-scene checkbox.
	ClearBeforeGenerate() (bool, error)
}

// Sync refreshes p from r. The four selectors are read first; for each group
// either the simple value or the per-field min/max values are applied. Grid,
// keep flags and the clear flag follow.
//
// Reader failures are wrapped as EXTERNAL errors; invalid values fail with
// INVALID_RANGE or INVALID_DIMENSION. p is modified only if every read and
// every value succeeds.
func (p *Set) Sync(r UIReader) error {
	next := p.Clone()

	for _, g := range Groups() {
		mode, err := r.Mode(g)
		if err != nil {
			return external(err, "read %s mode", g)
		}
		switch mode {
		case Simple:
			v, err := r.Simple(g)
			if err != nil {
				return external(err, "read %s value", g)
			}
			for _, f := range g.Fields() {
				next.SetSimple(f, v)
			}
		case Advanced:
			for _, f := range g.Fields() {
				lo, hi, err := r.Range(f)
				if err != nil {
					return external(err, "read %s range", f)
				}
				if err := next.SetRange(f, lo, hi); err != nil {
					return err
				}
			}
		default:
			return tgerrors.New(tgerrors.ErrCodeInvalidInput, "%s: unknown mode %v", g, mode)
		}
	}

	columns, rows, err := r.Grid()
	if err != nil {
		return external(err, "read grid")
	}
	if err := next.SetGrid(columns, rows); err != nil {
		return err
	}

	for _, c := range Channels() {
		keep, err := r.Keep(c)
		if err != nil {
			return external(err, "read keep %s", c)
		}
		next.Keep[c] = keep
	}

	clearFirst, err := r.ClearBeforeGenerate()
	if err != nil {
		return external(err, "read clear flag")
	}
	next.ClearBeforeGenerate = clearFirst

	// A negative simple height or rotation inverts its [0, v] range.
	if err := next.Validate(); err != nil {
		return err
	}

	*p = *next
	return nil
}

func external(err error, format string, args ...any) error {
	return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, format, args...)
}
