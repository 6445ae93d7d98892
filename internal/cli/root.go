// Package cli implements the stockroom command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/inventory"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
	backend   string
	jsonMode  bool
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags   rootFlags
	config  types.Config
	logger  *zap.Logger
	backend types.Backend
	store   *inventory.Store
	loadErr error

	// logOutput receives log lines; nil means stderr.
	logOutput io.Writer
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Track item quantities in a local inventory file",
		Long: `Stockroom keeps item quantities in a JSON document (or a SQLite file),
adds and removes stock, and reports items that are running low.`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.attach()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/stockroom)")
	root.PersistentFlags().StringVar(&a.flags.dataFile, "data-file", "", "inventory file (default: $(CWD)/inventory.json)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite (default from config.yaml)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newRemoveCmd(a))
	root.AddCommand(newGetCmd(a))
	root.AddCommand(newLowCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newDemoCmd(a))

	return root, a
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root, a := newRoot()
	os.Exit(run(root, a, os.Args[1:], os.Stderr))
}

// run executes root with args and returns the process exit code.
// Errors are printed to errOut. The logger is flushed whether or not the
// command failed.
func run(root *cobra.Command, a *app, args []string, errOut io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	logging.Sync(a.logger)
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(errOut, "Error:", err)

	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// codedError carries the exit code a failure should produce.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

// userError marks err as caused by bad input.
func userError(err error) error {
	return &codedError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure.
func sysError(err error) error {
	return &codedError{code: exitSysError, err: err}
}
