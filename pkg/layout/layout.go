package layout

import (
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// Placement describes one generated tile.
type Placement struct {
	Row    int `json:"row"`
	Column int `json:"column"`

	// Size holds width (X), depth (Y) and height (Z) of the box.
	Size Vec3 `json:"size"`
	// Position is the world-space centre of the box.
	Position Vec3 `json:"position"`
	// Rotation holds Euler angles in degrees.
	Rotation Vec3 `json:"rotation"`
}

// Layout returns columns*rows placements in column-major order.
//
// Draw order per column is gapX, sizeX; per row it is sizeY, sizeZ, gapY (rows
// after the first only), height, rotX, rotY, rotZ. A source is consumed even
// for fixed ranges, so the number of draws depends only on the grid.
//
// An empty grid yields an empty, non-nil slice. Negative dimensions fail with
// INVALID_DIMENSION.
func Layout(p *params.Set, rng RandomSource) ([]Placement, error) {
	if err := params.CheckGrid(p.Columns, p.Rows); err != nil {
		return nil, err
	}

	out := make([]Placement, 0, p.Columns*p.Rows)
	var offsetX, prevSizeX float64

	for i := range p.Columns {
		gapX := Uniform(rng, p.Range(params.GapX))
		sizeX := Uniform(rng, p.Range(params.TileSizeX))
		if i > 0 {
			offsetX += prevSizeX / 2
		}
		offsetX += gapX + sizeX/2
		prevSizeX = sizeX

		var offsetY, prevSizeY float64
		for j := range p.Rows {
			sizeY := Uniform(rng, p.Range(params.TileSizeY))
			sizeZ := Uniform(rng, p.Range(params.TileSizeZ))
			if j > 0 {
				offsetY += prevSizeY/2 + Uniform(rng, p.Range(params.GapY))
			}
			offsetY += sizeY / 2
			prevSizeY = sizeY

			height := Uniform(rng, p.Range(params.HeightVariation))
			rot := Vec3{
				X: Uniform(rng, p.Range(params.RotationX)),
				Y: Uniform(rng, p.Range(params.RotationY)),
				Z: Uniform(rng, p.Range(params.RotationZ)),
			}

			out = append(out, Placement{
				Row:      j,
				Column:   i,
				Size:     Vec3{sizeX, sizeY, sizeZ},
				Position: Vec3{offsetX, height, offsetY},
				Rotation: rot,
			})
		}
	}
	return out, nil
}

// Bounds returns the axis-aligned footprint of the unrotated boxes. Both
// vectors are zero for an empty layout.
func Bounds(placements []Placement) (lo, hi Vec3) {
	for i, pl := range placements {
		// Size.Z is the box height and maps onto the vertical position axis.
		half := Vec3{pl.Size.X / 2, pl.Size.Z / 2, pl.Size.Y / 2}
		a := Vec3{pl.Position.X - half.X, pl.Position.Y - half.Y, pl.Position.Z - half.Z}
		b := pl.Position.Add(half)
		if i == 0 {
			lo, hi = a, b
			continue
		}
		lo, hi = lo.Min(a), hi.Max(b)
	}
	return lo, hi
}
