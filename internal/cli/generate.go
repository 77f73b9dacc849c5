package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preview"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/scene"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/session"
)

// tableLimit caps the rows printed by --table.
const tableLimit = 20

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		opts        paramOpts
		scenePath   string
		previewPath string
		showTable   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a grid of tiles into a scene file",
		Long: `Generate lays out columns x rows tiles and adds them to the scene file.

Unless --no-clear is given, tiles from the previous run are deleted first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := c.loadParams(ctx, cmd, &opts)
			if err != nil {
				return err
			}
			for _, line := range describeParams(p) {
				logger.Debug(line)
			}

			m, tiles, err := scene.ReadFile(scenePath)
			if err != nil {
				return err
			}
			s := session.New(m, session.WithLogger(logger), session.WithTiles(tiles))
			before := s.Len()

			prog := newProgress(logger)
			n, genErr := s.Generate(ctx, p, random(cmd, &opts))
			if err := scene.WriteFile(scenePath, m, s.Tiles()); err != nil {
				return errors.Join(genErr, err)
			}
			if genErr != nil {
				return genErr
			}
			prog.done(fmt.Sprintf("Generated %d tiles", n))

			created := s.Tiles()
			if p.ClearBeforeGenerate {
				before = 0
			}
			created = created[min(before, len(created)):]
			placements := make([]layout.Placement, len(created))
			for i, t := range created {
				placements[i] = t.Placement
			}

			printSuccess("Generated %s tiles (%d x %d)", StyleNumber.Render(fmt.Sprint(n)), p.Columns, p.Rows)
			printFile(scenePath)
			if showTable {
				fmt.Println(placementTable(placements, tableLimit))
			}
			if previewPath != "" {
				spin := newSpinner(os.Stderr, "Rendering preview")
				spin.Start(ctx)
				svg, err := preview.Render(ctx, placements, preview.Options{Labels: true})
				spin.Stop()
				if err != nil {
					return err
				}
				if err := os.WriteFile(previewPath, svg, 0644); err != nil {
					return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "write preview")
				}
				printFile(previewPath)
			}
			printNextStep("Re-roll all tiles", "tilegen regenerate --scene "+scenePath+" --all")
			return nil
		},
	}

	addParamFlags(cmd, &opts, true)
	cmd.Flags().StringVarP(&scenePath, "scene", "s", defaultScenePath, "scene file to update")
	cmd.Flags().StringVar(&previewPath, "preview", "", "write an SVG preview of the new tiles")
	cmd.Flags().BoolVar(&showTable, "table", false, "print the generated placements")
	return cmd
}

// regenerateCommand creates the regenerate command.
func (c *CLI) regenerateCommand() *cobra.Command {
	var (
		opts      paramOpts
		scenePath string
		selection []string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Re-roll size, height and rotation of selected tiles",
		Long: `Regenerate draws new sizes, height offsets and rotations for the selected
objects without moving them along the grid. Channels listed in --keep (or kept
by the preset) are left untouched.

The selection is --select, --all, or the selection saved in the scene file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if all && len(selection) > 0 {
				return tgerrors.New(tgerrors.ErrCodeInvalidInput, "--all and --select are mutually exclusive")
			}
			p, err := c.loadParams(ctx, cmd, &opts)
			if err != nil {
				return err
			}

			m, tiles, err := scene.ReadFile(scenePath)
			if err != nil {
				return err
			}
			switch {
			case all:
				err = m.Select(m.Transforms()...)
			case len(selection) > 0:
				handles := make([]session.Handle, len(selection))
				for i, h := range selection {
					handles[i] = session.Handle(strings.TrimSpace(h))
				}
				err = m.Select(handles...)
			}
			if err != nil {
				return err
			}

			s := session.New(m, session.WithLogger(logger), session.WithTiles(tiles))
			prog := newProgress(logger)
			report, regenErr := s.RegenerateSelection(ctx, p, random(cmd, &opts), m)
			if err := scene.WriteFile(scenePath, m, s.Tiles()); err != nil {
				return errors.Join(regenErr, err)
			}
			prog.done(fmt.Sprintf("Regenerated %d objects", report.Updated))

			printSuccess("Regenerated %s objects (%d attribute writes)", StyleNumber.Render(fmt.Sprint(report.Updated)), report.Writes)
			for _, h := range report.Skipped {
				printWarning("skipped %s: no size target", h)
			}
			for _, h := range report.Failed {
				printWarning("some writes failed on %s", h)
			}
			if report.Updated == 0 && len(report.Skipped) == 0 {
				printInfo("Nothing selected")
				printNextStep("Select every object", "tilegen regenerate --scene "+scenePath+" --all")
			}
			printFile(scenePath)
			return regenErr
		},
	}

	addParamFlags(cmd, &opts, false)
	cmd.Flags().StringVarP(&scenePath, "scene", "s", defaultScenePath, "scene file to update")
	cmd.Flags().StringSliceVar(&selection, "select", nil, "objects to regenerate (comma-separated handles)")
	cmd.Flags().BoolVar(&all, "all", false, "regenerate every object in the scene")
	return cmd
}

// clearCommand creates the clear command.
func (c *CLI) clearCommand() *cobra.Command {
	var scenePath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the generated tiles from a scene file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, tiles, err := scene.ReadFile(scenePath)
			if err != nil {
				return err
			}
			s := session.New(m, session.WithLogger(logger), session.WithTiles(tiles))
			removed, clearErr := s.Clear(ctx)
			if err := scene.WriteFile(scenePath, m, s.Tiles()); err != nil {
				return errors.Join(clearErr, err)
			}
			if clearErr != nil {
				return clearErr
			}
			printSuccess("Removed %s tiles", StyleNumber.Render(fmt.Sprint(removed)))
			printFile(scenePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenePath, "scene", "s", defaultScenePath, "scene file to update")
	return cmd
}
