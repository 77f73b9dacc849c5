package preset

import (
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// Bounds is an advanced-mode min/max pair.
type Bounds struct {
	Min float64 `toml:"min" yaml:"min" json:"min"`
	Max float64 `toml:"max" yaml:"max" json:"max"`
}

// Axes3 configures a group with X, Y and Z fields.
type Axes3 struct {
	Mode  string  `toml:"mode" yaml:"mode" json:"mode"`
	Value float64 `toml:"value" yaml:"value" json:"value"`
	X     Bounds  `toml:"x" yaml:"x" json:"x"`
	Y     Bounds  `toml:"y" yaml:"y" json:"y"`
	Z     Bounds  `toml:"z" yaml:"z" json:"z"`
}

// Axes2 configures a group with X and Y fields.
type Axes2 struct {
	Mode  string  `toml:"mode" yaml:"mode" json:"mode"`
	Value float64 `toml:"value" yaml:"value" json:"value"`
	X     Bounds  `toml:"x" yaml:"x" json:"x"`
	Y     Bounds  `toml:"y" yaml:"y" json:"y"`
}

// Single configures a group with one field.
type Single struct {
	Mode  string  `toml:"mode" yaml:"mode" json:"mode"`
	Value float64 `toml:"value" yaml:"value" json:"value"`
	Range Bounds  `toml:"range" yaml:"range" json:"range"`
}

// Grid is the requested tile count.
type Grid struct {
	Columns int `toml:"columns" yaml:"columns" json:"columns"`
	Rows    int `toml:"rows" yaml:"rows" json:"rows"`
}

// Keep holds the keep-on-regenerate checkboxes.
type Keep struct {
	SizeX   bool `toml:"size_x" yaml:"size_x" json:"size_x"`
	SizeY   bool `toml:"size_y" yaml:"size_y" json:"size_y"`
	SizeZ   bool `toml:"size_z" yaml:"size_z" json:"size_z"`
	Height  bool `toml:"height" yaml:"height" json:"height"`
	RotateX bool `toml:"rotate_x" yaml:"rotate_x" json:"rotate_x"`
	RotateY bool `toml:"rotate_y" yaml:"rotate_y" json:"rotate_y"`
	RotateZ bool `toml:"rotate_z" yaml:"rotate_z" json:"rotate_z"`
}

// Preset is a saved tool window state.
type Preset struct {
	Name        string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`

	Grid     Grid   `toml:"grid" yaml:"grid" json:"grid"`
	TileSize Axes3  `toml:"tile_size" yaml:"tile_size" json:"tile_size"`
	Gaps     Axes2  `toml:"gaps" yaml:"gaps" json:"gaps"`
	Height   Single `toml:"height" yaml:"height" json:"height"`
	Rotation Axes3  `toml:"rotation" yaml:"rotation" json:"rotation"`

	Keep                Keep `toml:"keep" yaml:"keep" json:"keep"`
	ClearBeforeGenerate bool `toml:"clear_before_generate" yaml:"clear_before_generate" json:"clear_before_generate"`
}

// Simple-mode values shown by a fresh tool window.
const (
	DefaultSimpleTileSize = 2.0
	DefaultSimpleGap      = 0.1
	DefaultSimpleHeight   = 0.5
	DefaultSimpleRotation = 5.0
)

// Default returns the preset of a fresh tool window with every group in
// advanced mode, so that it syncs to [params.Default].
func Default() *Preset {
	p := FromParams(params.Default())
	p.Name = "default"
	p.TileSize.Value = DefaultSimpleTileSize
	p.Gaps.Value = DefaultSimpleGap
	p.Height.Value = DefaultSimpleHeight
	p.Rotation.Value = DefaultSimpleRotation
	return p
}

// FromParams returns an all-advanced preset holding the ranges of s.
func FromParams(s *params.Set) *Preset {
	p := &Preset{
		Grid:                Grid{Columns: s.Columns, Rows: s.Rows},
		ClearBeforeGenerate: s.ClearBeforeGenerate,
	}
	for _, g := range params.Groups() {
		p.setMode(g, params.Advanced.String())
	}
	for _, f := range params.Fields() {
		r := s.Range(f)
		*p.bounds(f) = Bounds{Min: r.Min, Max: r.Max}
	}
	for _, c := range params.Channels() {
		*p.keep(c) = s.Keeps(c)
	}
	return p
}

// Params applies p to a fresh default set.
func (p *Preset) Params() (*params.Set, error) {
	s := params.Default()
	if err := s.Sync(p.Reader()); err != nil {
		return nil, err
	}
	return s, nil
}

// SetMode switches every group to m.
func (p *Preset) SetMode(m params.Mode) {
	for _, g := range params.Groups() {
		p.setMode(g, m.String())
	}
}

// Bounds returns a pointer to the advanced bounds of f.
func (p *Preset) Bounds(f params.Field) *Bounds { return p.bounds(f) }

// KeepFlag returns a pointer to the keep checkbox of c.
func (p *Preset) KeepFlag(c params.Channel) *bool { return p.keep(c) }

// Selector returns pointers to the mode and simple value of g.
func (p *Preset) Selector(g params.Group) (mode *string, value *float64) {
	switch g {
	case params.GroupTileSize:
		return &p.TileSize.Mode, &p.TileSize.Value
	case params.GroupGaps:
		return &p.Gaps.Mode, &p.Gaps.Value
	case params.GroupHeight:
		return &p.Height.Mode, &p.Height.Value
	default:
		return &p.Rotation.Mode, &p.Rotation.Value
	}
}

func (p *Preset) setMode(g params.Group, m string) {
	mode, _ := p.Selector(g)
	*mode = m
}

func (p *Preset) bounds(f params.Field) *Bounds {
	switch f {
	case params.TileSizeX:
		return &p.TileSize.X
	case params.TileSizeY:
		return &p.TileSize.Y
	case params.TileSizeZ:
		return &p.TileSize.Z
	case params.GapX:
		return &p.Gaps.X
	case params.GapY:
		return &p.Gaps.Y
	case params.HeightVariation:
		return &p.Height.Range
	case params.RotationX:
		return &p.Rotation.X
	case params.RotationY:
		return &p.Rotation.Y
	default:
		return &p.Rotation.Z
	}
}

func (p *Preset) keep(c params.Channel) *bool {
	switch c {
	case params.SizeX:
		return &p.Keep.SizeX
	case params.SizeY:
		return &p.Keep.SizeY
	case params.SizeZ:
		return &p.Keep.SizeZ
	case params.Height:
		return &p.Keep.Height
	case params.RotateX:
		return &p.Keep.RotateX
	case params.RotateY:
		return &p.Keep.RotateY
	default:
		return &p.Keep.RotateZ
	}
}

// Reader returns p as a [params.UIReader].
func (p *Preset) Reader() params.UIReader { return reader{p} }

// reader adapts a Preset to params.UIReader.
type reader struct{ p *Preset }

func (r reader) Mode(g params.Group) (params.Mode, error) {
	mode, _ := r.p.Selector(g)
	return params.ParseMode(*mode)
}

func (r reader) Simple(g params.Group) (float64, error) {
	_, v := r.p.Selector(g)
	return *v, nil
}

func (r reader) Range(f params.Field) (float64, float64, error) {
	b := r.p.bounds(f)
	return b.Min, b.Max, nil
}

func (r reader) Grid() (int, int, error) {
	return r.p.Grid.Columns, r.p.Grid.Rows, nil
}

func (r reader) Keep(c params.Channel) (bool, error) {
	return *r.p.keep(c), nil
}

func (r reader) ClearBeforeGenerate() (bool, error) {
	return r.p.ClearBeforeGenerate, nil
}
