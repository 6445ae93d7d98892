package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLowCmd(a *app) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items below a stock threshold",
		Long: `Low lists every item whose quantity is strictly below the threshold,
one per line. The threshold defaults to the threshold key of config.yaml (5).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.config.Threshold
			}
			low := a.store.LowStock(threshold)
			if a.flags.jsonMode {
				return writeJSON(cmd, low)
			}
			for _, item := range low {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "quantity threshold (default from config)")
	return cmd
}
