package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/benjaminghys/Tile-Generator-Maya/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and previews over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := server.New(server.WithLogger(logger), server.WithStore(store))
			printInfo("Listening on %s", StyleValue.Render(addr))
			printNextStep("Try it", "curl -X POST http://localhost"+addr+"/v1/layout -d '{\"seed\": 1}'")

			err = srv.ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) {
				logger.Info("server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
