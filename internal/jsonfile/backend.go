// Package jsonfile persists the inventory mapping as a single JSON object.
//
// The document maps item identifiers to integer quantities:
//
//	{
//	  "apple": 7,
//	  "banana": 2
//	}
//
// Key order is preserved in both directions. Writes are atomic.
package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DefaultFileName is the document name used when no path is configured.
const DefaultFileName = "inventory.json"

// Backend reads and writes one JSON document on disk.
type Backend struct {
	path string
}

// NewBackend returns a Backend for the document at path.
func NewBackend(path string) *Backend {
	if path == "" {
		path = DefaultFileName
	}
	return &Backend{path: path}
}

// Location returns the document path.
func (b *Backend) Location() string {
	return b.path
}

// Load reads and decodes the document. See types.Backend for the meaning of
// the returned entries when the error wraps types.ErrMalformedData.
func (b *Backend) Load() ([]types.Entry, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrMissingResource, b.path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrIOFailure, b.path, err)
	}
	return decodeDocument(data)
}

// Save encodes entries and atomically replaces the document.
func (b *Backend) Save(entries []types.Entry) error {
	data, err := encodeDocument(entries)
	if err != nil {
		return err
	}
	if err := writeAtomic(b.path, data); err != nil {
		return fmt.Errorf("%w: %v", types.ErrIOFailure, err)
	}
	return nil
}
