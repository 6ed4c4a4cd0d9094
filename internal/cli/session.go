package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Maan2003/gdb-utils/pkg/gdb"
)

// sessionFlags holds the attach-target flags shared by every command that
// talks to gdb.
type sessionFlags struct {
	pid     int
	exe     string
	core    string
	gdbPath string
}

// register adds the session flags to cmd.
func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.pid, "pid", "p", 0, "attach to a running process")
	cmd.Flags().StringVar(&f.exe, "exe", "", "load an executable")
	cmd.Flags().StringVar(&f.core, "core", "", "load a core dump (requires --exe)")
	cmd.Flags().StringVar(&f.gdbPath, "gdb", "", "gdb binary to use (default: search PATH)")
}

// open starts a gdb session from the flags, falling back to the configured
// gdb path when --gdb is unset.
func (f *sessionFlags) open(ctx context.Context, c *CLI, cfg Config) (*gdb.Session, error) {
	path := f.gdbPath
	if path == "" {
		path = cfg.GDB
	}
	return gdb.Start(ctx, gdb.Options{
		GDBPath:    path,
		PID:        f.pid,
		Executable: f.exe,
		Core:       f.core,
		Logger:     c.Logger,
	})
}
