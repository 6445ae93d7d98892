package types

import (
	"errors"
	"fmt"
)

// Backend reads and writes the whole inventory mapping.
// Entries are exchanged in insertion order.
type Backend interface {
	// Load returns the persisted entries.
	//
	// Returns an error wrapping ErrMissingResource when nothing has been
	// persisted yet. Returns an error wrapping ErrMalformedData when the
	// source cannot be decoded; in that case a non-nil entries slice holds
	// the entries decoded before the bad value and the caller is expected to
	// apply them, while a nil slice means nothing may be applied.
	Load() ([]Entry, error)

	// Save replaces the persisted entries with entries.
	Save(entries []Entry) error

	// Location describes where the backend persists, for log output.
	Location() string
}

// Store operation errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)

// Persistence errors.
var (
	ErrMissingResource = errors.New("persistence source does not exist")
	ErrMalformedData   = errors.New("malformed inventory data")
	ErrNotObject       = fmt.Errorf("%w: document is not a JSON object", ErrMalformedData)
	ErrIOFailure       = errors.New("inventory i/o failure")
)
