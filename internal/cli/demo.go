package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/inventory"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the example workflow against a fresh inventory",
		Long: `Demo starts from an empty inventory, adds apples and bananas, removes
some apples and an orange that was never stocked, prints the results, then
saves the inventory to the configured location (replacing it), loads it
back and prints the report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, a)
		},
	}
}

func runDemo(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	s := inventory.NewStore(inventory.WithLogger(a.logger))

	steps := []struct {
		item string
		qty  int
		add  bool
	}{
		{item: "apple", qty: 10, add: true},
		{item: "banana", qty: 2, add: true},
		{item: "apple", qty: 3},
		{item: "orange", qty: 1},
	}
	for _, st := range steps {
		var err error
		if st.add {
			err = s.Add(st.item, st.qty)
		} else {
			err = s.Remove(st.item, st.qty)
		}
		if err != nil {
			return userError(err)
		}
	}

	apples, err := s.Quantity("apple")
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(out, "Apple stock:", apples)
	fmt.Fprintf(out, "Low items: [%s]\n", strings.Join(s.LowStock(types.DefaultLowStockThreshold), ", "))

	// Persistence problems are reported by the store and do not end the demo.
	_ = s.SaveTo(a.backend)
	_ = s.LoadFrom(a.backend)
	return s.Report(out)
}
