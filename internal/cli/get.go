package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <item>",
		Short: "Print the quantity of an item",
		Long:  `Get prints the stored quantity of an item, or 0 if it is not stocked.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := a.store.Quantity(args[0])
			if err != nil {
				return userError(err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, types.Entry{Item: args[0], Quantity: qty})
			}
			fmt.Fprintln(cmd.OutOrStdout(), qty)
			return nil
		},
	}
}
