package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// evalCommand creates the eval command for one-off expression evaluation.
func (c *CLI) evalCommand() *cobra.Command {
	var (
		asJSON  bool
		session sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate an expression in the debuggee and print its value",
		Long: `Evaluate an expression in the debuggee and print its value.

All arguments join into one expression. By default the value prints in
gdb's literal syntax; --json converts lists and aggregates to JSON for
piping into other tools.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEval(cmd.Context(), session, strings.Join(args, " "), asJSON)
		},
	}

	session.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the value as JSON")

	return cmd
}

// runEval evaluates and prints one expression.
func (c *CLI) runEval(ctx context.Context, flags sessionFlags, expr string, asJSON bool) error {
	sess, err := flags.open(ctx, c, userConfig())
	if err != nil {
		return err
	}
	defer sess.Close()

	v, err := sess.Eval(ctx, expr)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(v.Interface(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(v.String())
	return nil
}
