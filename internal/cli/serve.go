package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maan2003/gdb-utils/internal/server"
)

// serveCommand creates the serve command for hosting exported artifacts.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve exported artifacts over HTTP",
		Long: `Serve exported artifacts over HTTP.

Hosts the given directory (default: current directory) with an index page
that auto-refreshes, so re-exported tables and graphs show up in the
browser after every debugger step. Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("artifact directory %s: %w", dir, err)
			}

			if addr == "" {
				addr = userConfig().Addr
			}

			printInfo("Serving %s on http://%s", dir, addr)
			logger := loggerFromContext(cmd.Context())
			srv := server.New(dir, server.WithLogger(logger))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
