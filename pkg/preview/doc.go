// Package preview draws a top-down picture of a tile layout.
//
// [ToDOT] turns placements into a Graphviz graph where every tile is a box
// pinned at its footprint position; [RenderSVG] lays it out with neato and
// returns SVG. The picture ignores rotation and shows the unrotated
// footprint of each tile, shaded by its height offset.
//
//	placements, _ := layout.Layout(params.Default(), layout.NewSeeded(1))
//	svg, err := preview.RenderSVG(ctx, preview.ToDOT(placements, preview.Options{}))
package preview
