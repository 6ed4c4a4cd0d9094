package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// localsCommand creates the locals command for browsing frame variables.
func (c *CLI) localsCommand() *cobra.Command {
	var (
		pick    bool
		session sessionFlags
	)

	cmd := &cobra.Command{
		Use:   "locals",
		Short: "List the variables of the current stack frame",
		Long: `List the variables of the current stack frame.

With --pick, an interactive list opens instead; selecting a variable
prints its full value, which is handy for finding the expression to pass
to 'graph' or 'table'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLocals(cmd.Context(), session, pick)
		},
	}

	session.register(cmd)
	cmd.Flags().BoolVar(&pick, "pick", false, "interactively select a variable")

	return cmd
}

// runLocals lists or interactively picks frame variables.
func (c *CLI) runLocals(ctx context.Context, flags sessionFlags, pick bool) error {
	sess, err := flags.open(ctx, c, userConfig())
	if err != nil {
		return err
	}
	defer sess.Close()

	locals, err := sess.Locals(ctx)
	if err != nil {
		return err
	}
	if len(locals) == 0 {
		printInfo("No variables in the current frame")
		return nil
	}

	if !pick {
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(StyleDim).
			Headers("NAME", "VALUE")
		for _, l := range locals {
			tbl.Row(l.Name, l.Value)
		}
		fmt.Println(tbl.Render())
		return nil
	}

	model := NewLocalsModel(locals)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(LocalsModel)
	if !ok || m.Selected == nil {
		return nil
	}

	v, err := sess.Eval(ctx, m.Selected.Name)
	if err != nil {
		return err
	}
	fmt.Println(v.String())
	printNextStep("Export it", fmt.Sprintf("%s table %s out.html", appName, m.Selected.Name))
	return nil
}
