package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preset"
)

// channelFlags maps --keep values to channels.
var channelFlags = map[string]params.Channel{
	"size-x":   params.SizeX,
	"size-y":   params.SizeY,
	"size-z":   params.SizeZ,
	"height":   params.Height,
	"rotate-x": params.RotateX,
	"rotate-y": params.RotateY,
	"rotate-z": params.RotateZ,
}

// paramOpts holds the flags that override a preset.
type paramOpts struct {
	preset  string
	columns int
	rows    int
	seed    uint64
	noClear bool
	keep    []string
}

// addParamFlags registers the preset and override flags on cmd. grid adds
// the generate-only flags; otherwise the regenerate-only --keep is added.
func addParamFlags(cmd *cobra.Command, o *paramOpts, grid bool) {
	cmd.Flags().StringVarP(&o.preset, "preset", "p", "", "preset name or .toml/.yaml file (default: built-in defaults)")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed for a reproducible result")
	if grid {
		cmd.Flags().IntVarP(&o.columns, "columns", "c", 0, "number of columns (overrides preset)")
		cmd.Flags().IntVarP(&o.rows, "rows", "r", 0, "number of rows (overrides preset)")
		cmd.Flags().BoolVar(&o.noClear, "no-clear", false, "keep previously generated tiles")
		return
	}
	cmd.Flags().StringSliceVar(&o.keep, "keep", nil, "channels to leave untouched: "+strings.Join(channelNames(), ", "))
}

func channelNames() []string {
	names := make([]string, 0, len(channelFlags))
	for n := range channelFlags {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// parseKeep converts --keep values to channels.
func parseKeep(values []string) ([]params.Channel, error) {
	var out []params.Channel
	for _, v := range values {
		c, ok := channelFlags[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "unknown channel %q (valid: %s)", v, strings.Join(channelNames(), ", "))
		}
		out = append(out, c)
	}
	return out, nil
}

// loadParams resolves the preset and applies flag overrides. Only flags the
// user set take effect.
func (c *CLI) loadParams(ctx context.Context, cmd *cobra.Command, o *paramOpts) (*params.Set, error) {
	var store preset.Store
	if o.preset != "" && !preset.IsFile(o.preset) {
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		store = st
	}

	pr, err := preset.Resolve(ctx, store, o.preset)
	if err != nil {
		return nil, err
	}
	p, err := pr.Params()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("columns") || flags.Changed("rows") {
		columns, rows := p.Columns, p.Rows
		if flags.Changed("columns") {
			columns = o.columns
		}
		if flags.Changed("rows") {
			rows = o.rows
		}
		if err := p.SetGrid(columns, rows); err != nil {
			return nil, err
		}
	}
	if o.noClear {
		p.ClearBeforeGenerate = false
	}
	keep, err := parseKeep(o.keep)
	if err != nil {
		return nil, err
	}
	for _, ch := range keep {
		p.SetKeep(ch, true)
	}
	return p, nil
}

// random returns a seeded source when --seed was given, otherwise a
// clock-seeded one.
func random(cmd *cobra.Command, o *paramOpts) layout.RandomSource {
	if cmd.Flags().Changed("seed") {
		return layout.NewSeeded(o.seed)
	}
	return layout.NewRandom()
}

// describeParams returns one line per group for --verbose output.
func describeParams(p *params.Set) []string {
	var lines []string
	lines = append(lines, fmt.Sprintf("grid %d x %d", p.Columns, p.Rows))
	for _, g := range params.Groups() {
		var parts []string
		for _, f := range g.Fields() {
			r := p.Range(f)
			parts = append(parts, fmt.Sprintf("%s [%g, %g]", f, r.Min, r.Max))
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return lines
}
