// Package types defines the inventory entry type, the persistence Backend
// interface, configuration, and the standard errors shared by the stockroom
// store, its backends, and the CLI.
package types
