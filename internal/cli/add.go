package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/inventory"
)

func newAddCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "add <item> <qty>",
		Short: "Add stock for an item",
		Long: `Add increases the quantity of an item, creating it if needed.
A negative quantity decreases stock but never removes the item.

Example:
  stockroom add apple 10
  stockroom add apple -- -3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			var journal inventory.Journal
			if err := a.store.Add(args[0], qty, inventory.WithJournal(&journal)); err != nil {
				return userError(err)
			}
			if err := a.persist(); err != nil {
				return err
			}

			if verbose {
				for _, line := range journal.Lines() {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the journal line for the action")
	return cmd
}
