package cli

import (
	"github.com/spf13/cobra"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item> <qty>",
		Short: "Remove stock for an item",
		Long: `Remove decreases the quantity of an item. The item is deleted once its
quantity reaches zero or below. Removing an unknown item does nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			if err := a.store.Remove(args[0], qty); err != nil {
				return userError(err)
			}
			return a.persist()
		},
	}
}
