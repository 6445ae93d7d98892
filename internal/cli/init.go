package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom configuration and inventory file",
		Long: `Create the configuration directory with a default config.yaml, then
create an empty inventory at the configured location if none exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

// runInit is idempotent: an existing inventory is left untouched.
func runInit(cmd *cobra.Command, a *app) error {
	// Configuration was created by attach.
	_, err := os.Stat(a.config.DataFile)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		if err := a.persist(); err != nil {
			return err
		}
	default:
		return sysError(fmt.Errorf("stat inventory: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stockroom initialized (%s backend at %s)\n", a.config.Backend, a.config.DataFile)
	return nil
}
