package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preset"
)

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage parameter presets",
	}

	cmd.AddCommand(c.presetInitCommand())
	cmd.AddCommand(c.presetListCommand())
	cmd.AddCommand(c.presetShowCommand())
	cmd.AddCommand(c.presetSaveCommand())
	cmd.AddCommand(c.presetDeleteCommand())

	return cmd
}

// presetInitCommand creates the "preset init" subcommand.
func (c *CLI) presetInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default preset to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "tilegen.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return tgerrors.New(tgerrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := preset.WriteFile(path, preset.Default()); err != nil {
				return err
			}
			printSuccess("Wrote default preset")
			printFile(path)
			printNextStep("Generate with it", "tilegen generate --preset "+path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// presetListCommand creates the "preset list" subcommand.
func (c *CLI) presetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No presets stored")
				printNextStep("Save one", "tilegen preset save <name> [file]")
				return nil
			}
			for _, name := range names {
				fmt.Println("  " + StyleValue.Render(name))
			}
			if fs, ok := store.(*preset.FileStore); ok {
				printDetail("%d presets in %s", len(names), fs.Path())
			}
			return nil
		},
	}
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [name|file]",
		Short: "Print a preset (default: the built-in defaults)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}

			var store preset.Store
			if ref != "" && !preset.IsFile(ref) {
				st, err := c.openStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
				store = st
			}
			p, err := preset.Resolve(ctx, store, ref)
			if err != nil {
				return err
			}
			data, err := preset.Encode(p, preset.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(preset.FormatTOML), "output format: toml or yaml")
	return cmd
}

// presetSaveCommand creates the "preset save" subcommand.
func (c *CLI) presetSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> [file]",
		Short: "Store a preset file (or the defaults) under a name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			if err := tgerrors.ValidatePresetName(name); err != nil {
				return err
			}

			p := preset.Default()
			if len(args) == 2 {
				loaded, err := preset.Load(args[1])
				if err != nil {
					return err
				}
				p = loaded
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Put(ctx, name, p); err != nil {
				return err
			}
			printSuccess("Saved preset %s", StyleValue.Render(name))
			printNextStep("Use it", "tilegen generate --preset "+name)
			return nil
		},
	}
}

// presetDeleteCommand creates the "preset delete" subcommand.
func (c *CLI) presetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted preset %s", args[0])
			return nil
		},
	}
}
