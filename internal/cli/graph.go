package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maan2003/gdb-utils/pkg/cache"
	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/render/dot"
)

// graphCommand creates the graph command for exporting adjacency lists.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatStr string
		noCache   bool
		session   sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "graph EXPR... FILE",
		Short: "Export an adjacency-list graph as a Graphviz drawing",
		Long: `Export an adjacency-list graph as a Graphviz drawing.

EXPR is an expression in the debuggee whose value is an adjacency list:
element i holds the neighbors of node i. The final argument is the output
path; everything before it is joined into the expression, so no quoting is
needed for expressions with spaces.

Example:
  gdbviz graph -p $(pgrep solver) g.adj graph.svg`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := dot.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			expr, file := splitExprFile(args)
			return c.runGraph(cmd.Context(), graphParams{
				session: session,
				expr:    expr,
				file:    file,
				format:  format,
				noCache: noCache,
			})
		},
	}

	session.register(cmd)
	cmd.Flags().StringVarP(&formatStr, "format", "f", userConfig().Format, "output format: dot, svg, png, jpg")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

type graphParams struct {
	session sessionFlags
	expr    string
	file    string
	format  dot.Format
	noCache bool
}

// runGraph extracts the adjacency list and writes the rendered drawing.
func (c *CLI) runGraph(ctx context.Context, p graphParams) error {
	cfg := userConfig()

	sess, err := p.session.open(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	ext, err := inspect.ElementsOf(ctx, sess, p.expr)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", p.expr, err)
	}
	if ext.Kind != inspect.Sequence {
		printError("cannot parse graph")
		return nil
	}

	g := dot.FromAdjacency(ext.Items)
	src := dot.ToDOT(g)

	data, cached, err := c.renderGraph(ctx, src, p.format, p.noCache)
	if err != nil {
		return err
	}

	// Render fully before the file exists so a failure leaves nothing behind.
	if err := os.WriteFile(p.file, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p.file, err)
	}

	printSuccess("Exported graph %s", StyleValue.Render(p.expr))
	printFile(p.file)
	printStats(len(g.Nodes), len(g.Edges), cached)
	return nil
}

// renderGraph renders DOT source through the artifact cache.
func (c *CLI) renderGraph(ctx context.Context, src string, format dot.Format, noCache bool) ([]byte, bool, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, false, err
	}
	defer store.Close()

	key := cache.ArtifactKey("graph", cache.Hash([]byte(src)), string(format))
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()
	data, err := dot.Render(ctx, src, format)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, false, err
	}
	spinner.Stop()

	if err := store.Set(ctx, key, data); err != nil {
		c.Logger.Debug("Cache write failed", "err", err)
	}
	return data, false, nil
}
