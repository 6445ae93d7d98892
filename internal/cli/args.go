package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// parseQuantity converts a command argument to an integer quantity.
func parseQuantity(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, userError(fmt.Errorf("%w: quantity %q is not an integer", types.ErrInvalidArgument, arg))
	}
	return n, nil
}

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}
