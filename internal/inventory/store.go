// Package inventory holds the in-memory inventory mapping and the operations
// on it: add, remove, quantity and low-stock queries, load, save, and report.
//
// A Store is created by the caller and owns its mapping; there is no package
// level state. Entries enumerate in insertion order.
package inventory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/jsonfile"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Store is an inventory mapping from item identifier to quantity.
// It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	qty   map[string]int
	order []string // insertion order of the keys in qty

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence problems and
// suppressed failures. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		qty:    make(map[string]int),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddOption configures a single Add call.
type AddOption func(*addConfig)

type addConfig struct {
	journal *Journal
}

// WithJournal makes Add append a timestamped line describing the action to j.
// The journal stays owned by the caller; the store never persists it.
func WithJournal(j *Journal) AddOption {
	return func(c *addConfig) {
		c.journal = j
	}
}

// Add adds qty to the quantity of item, creating the entry if needed.
// qty may be negative. Add never removes an entry, even when the resulting
// quantity is zero or below; only Remove prunes.
// Returns ErrInvalidArgument if item is empty.
func (s *Store) Add(item string, qty int, opts ...AddOption) error {
	if item == "" {
		return fmt.Errorf("%w: item must not be empty", types.ErrInvalidArgument)
	}

	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	if _, ok := s.qty[item]; !ok {
		s.order = append(s.order, item)
	}
	s.qty[item] += qty
	s.mu.Unlock()

	if cfg.journal != nil {
		cfg.journal.record(s.now(), fmt.Sprintf("Added %d of %s", qty, item))
	}
	return nil
}

// Remove subtracts qty from the quantity of item. When the result is zero or
// below the entry is deleted. Removing an item that is not stored is a no-op.
// Returns ErrInvalidArgument if item is empty; no other failure is returned.
func (s *Store) Remove(item string, qty int) error {
	if item == "" {
		return fmt.Errorf("%w: item must not be empty", types.ErrInvalidArgument)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("unexpected error removing item",
				zap.String("item", item),
				zap.Int("qty", qty),
				zap.Any("panic", r))
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.qty[item]
	if !ok {
		s.logger.Debug("remove of absent item ignored", zap.String("item", item))
		return nil
	}

	current -= qty
	if current > 0 {
		s.qty[item] = current
		return nil
	}
	s.deleteLocked(item)
	return nil
}

// Quantity returns the stored quantity of item, or 0 if it is not stored.
// Returns ErrInvalidArgument if item is empty.
func (s *Store) Quantity(item string) (int, error) {
	if item == "" {
		return 0, fmt.Errorf("%w: item must not be empty", types.ErrInvalidArgument)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qty[item], nil
}

// LowStock returns the items whose quantity is strictly below threshold,
// in insertion order. The result is never nil.
func (s *Store) LowStock(threshold int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	low := []string{}
	for _, item := range s.order {
		if s.qty[item] < threshold {
			low = append(low, item)
		}
	}
	return low
}

// Entries returns a copy of the mapping in insertion order.
func (s *Store) Entries() []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]types.Entry, 0, len(s.order))
	for _, item := range s.order {
		entries = append(entries, types.Entry{Item: item, Quantity: s.qty[item]})
	}
	return entries
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Load replaces the mapping with the JSON document at path.
// See LoadFrom for the failure semantics.
func (s *Store) Load(path string) error {
	return s.LoadFrom(jsonfile.NewBackend(path))
}

// Save writes the mapping as a JSON document to path.
// See SaveTo for the failure semantics.
func (s *Store) Save(path string) error {
	return s.SaveTo(jsonfile.NewBackend(path))
}

// LoadFrom replaces the mapping with the entries held by b.
//
// A source that does not exist leaves the mapping unchanged and returns nil.
// A source that is not a JSON object, or cannot be parsed at all, leaves the
// mapping unchanged. A value that cannot be read as an integer aborts the load
// after the mapping was cleared: only the entries preceding the bad value are
// kept.
//
// Every failure is logged before it is returned. The returned error is a
// status for callers that need to know; best-effort callers may ignore it.
func (s *Store) LoadFrom(b types.Backend) error {
	entries, err := b.Load()
	switch {
	case err == nil:
		s.replace(entries)
		s.logger.Debug("inventory loaded",
			zap.String("source", b.Location()),
			zap.Int("items", len(entries)))
		return nil
	case errors.Is(err, types.ErrMissingResource):
		s.logger.Debug("inventory source missing, nothing loaded", zap.String("source", b.Location()))
		return nil
	case errors.Is(err, types.ErrNotObject):
		s.logger.Warn("inventory source did not contain a JSON object, load skipped",
			zap.String("source", b.Location()))
		return err
	case errors.Is(err, types.ErrMalformedData):
		if entries != nil {
			s.replace(entries)
		}
		s.logger.Error("error loading inventory",
			zap.String("source", b.Location()),
			zap.Int("items_kept", len(entries)),
			zap.Error(err))
		return err
	default:
		s.logger.Error("error loading inventory", zap.String("source", b.Location()), zap.Error(err))
		return err
	}
}

// SaveTo writes the mapping to b. Failures are logged and returned.
func (s *Store) SaveTo(b types.Backend) error {
	entries := s.Entries()
	if err := b.Save(entries); err != nil {
		s.logger.Error("error saving inventory", zap.String("destination", b.Location()), zap.Error(err))
		return err
	}
	s.logger.Debug("inventory saved",
		zap.String("destination", b.Location()),
		zap.Int("items", len(entries)))
	return nil
}

// replace clears the mapping and fills it from entries in order.
func (s *Store) replace(entries []types.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.qty = make(map[string]int, len(entries))
	s.order = make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := s.qty[e.Item]; !ok {
			s.order = append(s.order, e.Item)
		}
		s.qty[e.Item] = e.Quantity
	}
}

// deleteLocked removes item from the mapping. The caller holds s.mu.
func (s *Store) deleteLocked(item string) {
	delete(s.qty, item)
	for i, k := range s.order {
		if k == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
