package params

import (
	"fmt"
	"math"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

// Range is a closed interval sampled uniformly by the layout engine.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Fixed reports whether the range collapses to a single value.
func (r Range) Fixed() bool { return r.Min == r.Max }

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Field identifies one of the nine sampled ranges.
type Field int

const (
	TileSizeX Field = iota
	TileSizeY
	TileSizeZ
	GapX
	GapY
	HeightVariation
	RotationX
	RotationY
	RotationZ

	fieldCount
)

var fieldNames = [fieldCount]string{
	TileSizeX:       "tile size x",
	TileSizeY:       "tile size y",
	TileSizeZ:       "tile size z",
	GapX:            "gap x",
	GapY:            "gap y",
	HeightVariation: "height variation",
	RotationX:       "rotation x",
	RotationY:       "rotation y",
	RotationZ:       "rotation z",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := range fieldCount {
		out = append(out, f)
	}
	return out
}

// anchored reports whether simple mode pins the range minimum at zero.
func (f Field) anchored() bool {
	switch f {
	case HeightVariation, RotationX, RotationY, RotationZ:
		return true
	}
	return false
}

// Channel identifies a per-object value that regeneration may overwrite.
type Channel int

const (
	SizeX Channel = iota
	SizeY
	SizeZ
	Height
	RotateX
	RotateY
	RotateZ

	// ChannelCount is the number of regenerable channels.
	ChannelCount
)

var channelNames = [ChannelCount]string{
	SizeX:   "size x",
	SizeY:   "size y",
	SizeZ:   "size z",
	Height:  "height",
	RotateX: "rotation x",
	RotateY: "rotation y",
	RotateZ: "rotation z",
}

func (c Channel) String() string {
	if c < 0 || c >= ChannelCount {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Channels returns every channel in the order regeneration writes them.
func Channels() []Channel {
	out := make([]Channel, 0, ChannelCount)
	for c := range ChannelCount {
		out = append(out, c)
	}
	return out
}

// Source returns the field a channel is sampled from.
func (c Channel) Source() Field {
	switch c {
	case SizeX:
		return TileSizeX
	case SizeY:
		return TileSizeY
	case SizeZ:
		return TileSizeZ
	case Height:
		return HeightVariation
	case RotateX:
		return RotationX
	case RotateY:
		return RotationY
	default:
		return RotationZ
	}
}

// IsSize reports whether the channel lives on the size-bearing shape rather
// than on the object transform.
func (c Channel) IsSize() bool { return c == SizeX || c == SizeY || c == SizeZ }

// Set is the full generator configuration.
type Set struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`

	Ranges [fieldCount]Range `json:"ranges"`

	// Keep marks channels that regeneration must leave untouched.
	Keep [ChannelCount]bool `json:"keep"`

	ClearBeforeGenerate bool `json:"clear_before_generate"`
}

// Default returns the stock configuration: a 10×5 grid of slightly
// irregular tiles with small random tilt.
func Default() *Set {
	p := &Set{
		Columns:             10,
		Rows:                5,
		ClearBeforeGenerate: true,
	}
	p.Ranges[TileSizeX] = Range{2.0, 2.5}
	p.Ranges[TileSizeY] = Range{2, 3}
	p.Ranges[TileSizeZ] = Range{0.2, 0.5}
	p.Ranges[GapX] = Range{0.23, 0.55}
	p.Ranges[GapY] = Range{0.2, 0.8}
	p.Ranges[HeightVariation] = Range{-0.5, 0.2}
	p.Ranges[RotationX] = Range{-8, 5}
	p.Ranges[RotationY] = Range{-10, 8}
	p.Ranges[RotationZ] = Range{-10, 15}
	return p
}

// Clone returns an independent copy of p.
func (p *Set) Clone() *Set {
	c := *p
	return &c
}

// Range returns the configured range of f.
func (p *Set) Range(f Field) Range {
	return p.Ranges[f]
}

// Keeps reports whether regeneration must leave c untouched.
func (p *Set) Keeps(c Channel) bool {
	return p.Keep[c]
}

// SetKeep sets the keep-on-regenerate flag of c.
func (p *Set) SetKeep(c Channel, keep bool) {
	p.Keep[c] = keep
}

// SetSimple collapses f to a single user value. Size and gap fields become
// [value, value]; height and rotation fields become [0, value].
func (p *Set) SetSimple(f Field, value float64) {
	if f.anchored() {
		p.Ranges[f] = Range{Min: 0, Max: value}
		return
	}
	p.Ranges[f] = Range{Min: value, Max: value}
}

// SetRange sets an explicit range. It fails with INVALID_RANGE if min > max
// or either bound is NaN; the range is left unchanged in that case.
func (p *Set) SetRange(f Field, lo, hi float64) error {
	if err := checkRange(f, lo, hi); err != nil {
		return err
	}
	p.Ranges[f] = Range{Min: lo, Max: hi}
	return nil
}

// SetGrid sets the grid dimensions. Negative values fail with INVALID_DIMENSION.
func (p *Set) SetGrid(columns, rows int) error {
	if err := CheckGrid(columns, rows); err != nil {
		return err
	}
	p.Columns, p.Rows = columns, rows
	return nil
}

// Validate checks every range and the grid dimensions.
func (p *Set) Validate() error {
	if err := CheckGrid(p.Columns, p.Rows); err != nil {
		return err
	}
	for _, f := range Fields() {
		r := p.Ranges[f]
		if err := checkRange(f, r.Min, r.Max); err != nil {
			return err
		}
	}
	return nil
}

// CheckGrid returns an INVALID_DIMENSION error for negative grid sizes.
func CheckGrid(columns, rows int) error {
	if columns < 0 || rows < 0 {
		return tgerrors.New(tgerrors.ErrCodeInvalidDimension, "grid must not be negative: %d columns x %d rows", columns, rows)
	}
	return nil
}

func checkRange(f Field, lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return tgerrors.New(tgerrors.ErrCodeInvalidRange, "%s: bounds must be numbers", f)
	}
	if lo > hi {
		return tgerrors.New(tgerrors.ErrCodeInvalidRange, "%s: min %g exceeds max %g", f, lo, hi)
	}
	return nil
}
