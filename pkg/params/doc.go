// Package params holds the configurable parameter model of the tile generator.
//
// # Overview
//
// A [Set] carries everything the layout and regeneration steps read:
//
//   - Grid dimensions (columns × rows)
//   - Nine [Range] values addressed by [Field]: tile size per axis, gap per axis,
//     height variation and rotation per axis
//   - Seven keep-on-regenerate flags addressed by [Channel]
//   - The clear-before-generate flag
//
// # Simple and Advanced Modes
//
// Each [Group] of fields (tile size, gaps, height, rotation) is configured
// either in [Simple] mode with one value or in [Advanced] mode with explicit
// min/max ranges. Simple mode collapses size and gap ranges to a point
// (min = max = value) but anchors height and rotation ranges at zero
// (min = 0, max = value), so a simple height of 0.5 varies tiles between 0
// and 0.5.
//
// # Refreshing From a UI
//
// [Set.Sync] pulls the current widget state from a [UIReader] in one step. It
// is the single truth-refresh point before a generate or regenerate call and
// leaves the Set untouched if any value is invalid or unreadable.
//
//	p := params.Default()
//	if err := p.Sync(reader); err != nil {
//	    return err
//	}
//
// Invalid configuration is reported immediately with an INVALID_RANGE or
// INVALID_DIMENSION error from [github.com/benjaminghys/Tile-Generator-Maya/pkg/errors];
// nothing is clamped.
package params
