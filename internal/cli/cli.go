// Package cli implements the tilegen command-line interface.
//
// Commands:
//   - generate: lay out a grid of tiles into a scene file
//   - regenerate: re-roll size, height and rotation of selected tiles
//   - clear: delete the tiles a scene file tracks
//   - preset: manage saved parameter presets
//   - panel: interactive parameter window
//   - serve: HTTP API for layouts and previews
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjaminghys/Tile-Generator-Maya/pkg/buildinfo"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preset"
)

const (
	// appName is the application name used for directories and display.
	appName = "tilegen"

	// defaultScenePath is the scene file used when --scene is not given.
	defaultScenePath = "tilegen-scene.json"

	// envRedisAddr selects the Redis preset store when --redis is not given.
	envRedisAddr = "TILEGEN_REDIS_ADDR"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose   bool
	redisAddr string
	presetDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "tilegen lays out randomized tile and brick walls",
		Long:          `tilegen generates grids of box tiles with randomized sizes, gaps, height offsets and tilt, and re-rolls selected tiles without moving them.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.redisAddr, "redis", os.Getenv(envRedisAddr), "store presets in Redis at this address (env "+envRedisAddr+")")
	root.PersistentFlags().StringVar(&c.presetDir, "preset-dir", "", "preset directory (default $XDG_CONFIG_HOME/tilegen/presets)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.regenerateCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.panelCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// openStore opens the preset store selected by --redis and --preset-dir.
func (c *CLI) openStore(ctx context.Context) (preset.Store, error) {
	if c.redisAddr != "" {
		loggerFromContext(ctx).Debug("using redis preset store", "addr", c.redisAddr)
		return preset.NewRedisStore(ctx, preset.RedisConfig{Addr: c.redisAddr})
	}
	return preset.NewFileStore(c.presetDir)
}
