package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Maan2003/gdb-utils/pkg/inspect"
	"github.com/Maan2003/gdb-utils/pkg/render/htmltable"
)

// tableCommand creates the table command for exporting 1-D/2-D arrays.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		font    string
		preview bool
		session sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "table EXPR [HIGHLIGHT...] FILE",
		Short: "Export a 1-D or 2-D array as a styled HTML table",
		Long: `Export a 1-D or 2-D array as a styled HTML table.

EXPR is an expression in the debuggee that evaluates to an array. Each
HIGHLIGHT is an expression resolving to a cell index: a scalar for 1-D
tables or a 2-element array for 2-D tables. Highlighted cells are colored
from a fixed palette, assigned per distinct highlight expression, with a
legend below the table. The final argument is the output path.

Example:
  gdbviz table -p $(pgrep solver) dp {i,j} best dp.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, highlights, file := splitTableArgs(args)
			return c.runTable(cmd.Context(), tableParams{
				session:    session,
				expr:       expr,
				highlights: highlights,
				file:       file,
				font:       font,
				preview:    preview,
			})
		},
	}

	session.register(cmd)
	cmd.Flags().StringVar(&font, "font", "", "font family for the document (default from config)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print the table to the terminal as well")

	return cmd
}

type tableParams struct {
	session    sessionFlags
	expr       string
	highlights []string
	file       string
	font       string
	preview    bool
}

// runTable extracts the array, resolves highlight keys, and writes the
// HTML document.
func (c *CLI) runTable(ctx context.Context, p tableParams) error {
	cfg := userConfig()
	if p.font == "" {
		p.font = cfg.Font
	}

	sess, err := p.session.open(ctx, c, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	prog := newProgress(c.Logger)

	ext, err := inspect.ElementsOf(ctx, sess, p.expr)
	if err != nil {
		// An unresolvable root expression aborts quietly, matching how the
		// command behaves mid-session when a frame has no such variable.
		c.Logger.Debug("Root expression failed", "expr", p.expr, "err", err)
		return nil
	}
	if ext.Kind != inspect.Sequence {
		printError("cannot parse array")
		return nil
	}

	tbl := htmltable.Build(p.expr, ext.Items)
	keys := c.resolveHighlights(ctx, sess, p.highlights)
	hls := htmltable.Assign(keys, cfg.Palette)

	doc := htmltable.Render(tbl,
		htmltable.WithFont(p.font),
		htmltable.WithHighlights(hls),
	)

	if err := os.WriteFile(p.file, doc, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p.file, err)
	}

	prog.done("Extracted and rendered table")
	printSuccess("Exported table %s", StyleValue.Render(p.expr))
	printFile(p.file)
	if skipped := len(p.highlights) - len(keys); skipped > 0 {
		printWarning("%d highlight key(s) skipped", skipped)
	}

	if p.preview {
		printTablePreview(tbl, hls)
	}
	return nil
}

// resolveHighlights evaluates each highlight key expression and resolves
// it to a cell index. Keys that fail to evaluate or resolve are skipped;
// one bad key never aborts the export.
func (c *CLI) resolveHighlights(ctx context.Context, ev inspect.Evaluator, exprs []string) []htmltable.Key {
	var keys []htmltable.Key
	for _, expr := range exprs {
		v, err := ev.Eval(ctx, expr)
		if err != nil {
			c.Logger.Debug("Skipping highlight key", "expr", expr, "err", err)
			continue
		}
		idx, ok := inspect.ResolveIndex(v)
		if !ok {
			c.Logger.Debug("Highlight key has no index", "expr", expr, "value", v)
			continue
		}
		keys = append(keys, htmltable.Key{Expr: expr, Index: idx})
	}
	return keys
}
