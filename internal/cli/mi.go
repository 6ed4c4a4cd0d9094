package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Maan2003/gdb-utils/pkg/mi"
)

// miJSONCommand creates the mi-json command, a line filter from gdb/MI to
// JSON.
func (c *CLI) miJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mi-json",
		Short: "Convert gdb/MI output to JSON lines",
		Long: `Convert gdb/MI output to JSON lines.

Reads MI records from stdin and writes one JSON object per line to
stdout. Useful for scripting against "gdb --interpreter=mi3" without
reimplementing the MI grammar:

  gdb --interpreter=mi3 -x cmds.gdb ./app | gdbviz mi-json | jq .`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMIJSON(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runMIJSON converts records until EOF. Unparseable lines are logged and
// skipped rather than killing the stream.
func (c *CLI) runMIJSON(r io.Reader, w io.Writer) error {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	out := bufio.NewWriter(w)
	defer out.Flush()

	for scan.Scan() {
		rec, err := mi.Parse(scan.Text())
		if err != nil {
			c.Logger.Debug("Skipping malformed MI line", "err", err)
			continue
		}
		data, err := rec.JSON()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	}
	return scan.Err()
}
