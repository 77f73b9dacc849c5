package preview

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-graphviz"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
)

// DefaultScale converts scene units to inches.
const DefaultScale = 0.5

// Options configures preview rendering.
type Options struct {
	// Scale converts scene units to inches. Zero means DefaultScale.
	Scale float64
	// Labels prints "column,row" inside each tile.
	Labels bool
}

// ToDOT converts placements to Graphviz DOT. Scene X maps to the horizontal
// axis and scene Z (the row direction) to the vertical axis.
func ToDOT(placements []layout.Placement, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph tiles {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, fixedsize=true, style=filled, color=\"#555555\", fontsize=10];\n")
	buf.WriteString("\n")

	lo, hi := heightRange(placements)
	for _, pl := range placements {
		id := fmt.Sprintf("c%dr%d", pl.Column, pl.Row)
		label := ""
		if opts.Labels {
			label = fmt.Sprintf("%d,%d", pl.Column, pl.Row)
		}
		fmt.Fprintf(&buf, "  %q [pos=\"%s,%s!\", width=%s, height=%s, fillcolor=%q, label=%q];\n",
			id,
			num(pl.Position.X*scale), num(pl.Position.Z*scale),
			num(pl.Size.X*scale), num(pl.Size.Y*scale),
			shade(pl.Position.Y, lo, hi), label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func heightRange(placements []layout.Placement) (lo, hi float64) {
	if len(placements) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, pl := range placements {
		lo = math.Min(lo, pl.Position.Y)
		hi = math.Max(hi, pl.Position.Y)
	}
	return lo, hi
}

// shade maps h onto a grey between #999999 (lowest) and #eeeeee (highest).
func shade(h, lo, hi float64) string {
	t := 0.5
	if hi > lo {
		t = (h - lo) / (hi - lo)
	}
	v := int(math.Round(0x99 + t*(0xee-0x99)))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}

func num(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// RenderSVG lays out dot with neato, keeping pinned positions, and returns
// SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInternal, err, "render preview")
	}
	return buf.Bytes(), nil
}

// Render is ToDOT followed by RenderSVG.
func Render(ctx context.Context, placements []layout.Placement, opts Options) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(placements, opts))
}
