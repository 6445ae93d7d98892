package cli

import (
	"fmt"

	"github.com/mesh-intelligence/stockroom/internal/inventory"
	"github.com/mesh-intelligence/stockroom/internal/jsonfile"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// attach resolves configuration, builds the logger and backend, and loads
// the inventory. A failed load is logged by the store and does not stop the
// command, but it blocks persist so a partial mapping never overwrites the
// source.
func (a *app) attach() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	logger, err := logging.New(logging.Config{
		Level:  v.GetString(cfgKeyLogLevel),
		Format: v.GetString(cfgKeyLogFormat),
		Output: a.logOutput,
	})
	if err != nil {
		return userError(fmt.Errorf("configure logging: %w", err))
	}
	a.logger = logger

	backend := a.flags.backend
	if backend == "" {
		backend = v.GetString(cfgKeyBackend)
	}
	dataFile, err := paths.ResolveDataFile(a.flags.dataFile, v.GetString(cfgKeyDataFile), defaultFileName(backend))
	if err != nil {
		return sysError(fmt.Errorf("resolve data file: %w", err))
	}

	a.config = types.Config{
		Backend:   backend,
		DataFile:  dataFile,
		Threshold: v.GetInt(cfgKeyThreshold),
	}
	if err := a.config.Validate(); err != nil {
		return userError(fmt.Errorf("invalid configuration: %w", err))
	}

	a.backend = newBackend(a.config)
	a.store = inventory.NewStore(inventory.WithLogger(a.logger))
	a.loadErr = a.store.LoadFrom(a.backend)
	return nil
}

// persist saves the store to the configured backend.
func (a *app) persist() error {
	if a.loadErr != nil {
		return sysError(fmt.Errorf("inventory not saved: %s could not be loaded: %w", a.backend.Location(), a.loadErr))
	}
	if err := a.store.SaveTo(a.backend); err != nil {
		return sysError(fmt.Errorf("save inventory: %w", err))
	}
	return nil
}

func newBackend(cfg types.Config) types.Backend {
	if cfg.Backend == types.BackendSQLite {
		return sqlite.NewBackend(cfg.DataFile)
	}
	return jsonfile.NewBackend(cfg.DataFile)
}

func defaultFileName(backend string) string {
	if backend == types.BackendSQLite {
		return sqlite.DefaultFileName
	}
	return jsonfile.DefaultFileName
}
