// Package filestore provides the file-backed inventory store for stockd.
//
// @req RQ-0102
// @design DS-0102
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stockd/stockd/internal/core/domain"
)

// LoadOutcome identifies how the store obtained its initial state.
type LoadOutcome string

const (
	// OutcomeLoaded means the persisted file was read successfully.
	OutcomeLoaded LoadOutcome = "loaded"

	// OutcomeSeededMissing means the file did not exist and the default
	// inventory was seeded and persisted.
	OutcomeSeededMissing LoadOutcome = "seeded_missing"

	// OutcomeSeededCorrupt means the file existed but was unreadable or
	// failed the shape check, and the default inventory was seeded and
	// persisted over it.
	OutcomeSeededCorrupt LoadOutcome = "seeded_corrupt"
)

// LoadResult reports what Load did, so callers can log and test the
// self-healing path instead of having it swallowed.
type LoadResult struct {
	// Outcome is the load outcome.
	Outcome LoadOutcome

	// Items is the number of products in the store after loading.
	Items int

	// Reason carries the underlying read or decode error when the
	// default inventory was seeded. Nil for OutcomeLoaded.
	Reason error
}

// Seeded reports whether the default inventory replaced the persisted state.
func (r LoadResult) Seeded() bool {
	return r.Outcome != OutcomeLoaded
}

// Store is the file-backed inventory store. It owns the authoritative
// ordered product sequence; a single RWMutex covers every read and every
// mutate-then-persist sequence, so the in-memory state and the on-disk
// file are never observed in conflicting states from outside the lock.
//
// @design DS-0102
type Store struct {
	path     string
	defaults []domain.Product

	mu       sync.RWMutex
	products []domain.Product
}

// Option configures the Store.
type Option func(*Store)

// WithDefaultInventory overrides the seed set used when the persisted
// file is missing or unusable.
func WithDefaultInventory(products []domain.Product) Option {
	return func(s *Store) {
		s.defaults = products
	}
}

// New creates a store persisting to the given file path. No I/O happens
// until Load or the first mutation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		defaults: domain.DefaultInventory(),
		products: []domain.Product{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the canonical file path the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted file under the lock. A missing file, an
// unreadable file, or content failing the shape check (top level must be
// an array; every element must carry both id and quantity, with valid
// values and unique ids) seeds the default inventory and persists it
// before returning. The returned error is non-nil only when that seed
// persist itself fails; corrupt state alone is self-healing.
func (s *Store) Load(_ context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		outcome := OutcomeSeededCorrupt
		if errors.Is(err, os.ErrNotExist) {
			outcome = OutcomeSeededMissing
		}
		return s.seedLocked(outcome, err)
	}

	products, err := decodeInventory(data)
	if err != nil {
		return s.seedLocked(OutcomeSeededCorrupt, err)
	}

	s.products = products
	return LoadResult{Outcome: OutcomeLoaded, Items: len(products)}, nil
}

// Get returns the product with the given id.
func (s *Store) Get(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

// Snapshot returns a copy of the full product sequence in stored order.
func (s *Store) Snapshot(_ context.Context) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// DecrementOrder decrements the quantity of the given product by exactly
// one and persists the full sequence atomically, all under the write
// lock. Unknown ids fail with ErrProductNotFound; zero quantity fails
// with ErrOutOfStock without mutating anything. If the persist fails,
// the in-memory decrement is rolled back and ErrPersistFailure is
// returned wrapping the cause: the store never reports a success it
// could not make durable.
func (s *Store) DecrementOrder(_ context.Context, id int64) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if s.products[idx].Quantity <= 0 {
		return domain.Product{}, domain.ErrOutOfStock
	}

	s.products[idx].Quantity--
	if err := s.persistLocked(); err != nil {
		s.products[idx].Quantity++
		return domain.Product{}, domain.ErrPersistFailure.Wrap(err)
	}

	return s.products[idx], nil
}

// seedLocked replaces the in-memory state with the default inventory and
// persists it. Callers hold the write lock.
func (s *Store) seedLocked(outcome LoadOutcome, reason error) (LoadResult, error) {
	s.products = append([]domain.Product(nil), s.defaults...)

	result := LoadResult{Outcome: outcome, Items: len(s.products), Reason: reason}
	if err := s.persistLocked(); err != nil {
		return result, fmt.Errorf("filestore: persist seed: %w", err)
	}
	return result, nil
}

// persistLocked writes the full product sequence to a temp file in the
// same directory and atomically renames it over the canonical path, so a
// crash never leaves a partial file visible. Callers hold the write lock.
func (s *Store) persistLocked() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("filestore: create dir: %w", err)
		}
	}

	data, err := json.Marshal(s.products)
	if err != nil {
		return fmt.Errorf("filestore: marshal: %w", err)
	}

	tempPath := s.path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("filestore: write: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("filestore: sync: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("filestore: close: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("filestore: rename: %w", err)
	}
	return nil
}

// productRecord mirrors the wire shape with optional fields so the shape
// check can tell a missing field from a zero value.
type productRecord struct {
	ID       *int64 `json:"id"`
	Quantity *int64 `json:"quantity"`
}

func decodeInventory(data []byte) ([]domain.Product, error) {
	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("filestore: decode: %w", err)
	}
	if records == nil {
		return nil, errors.New("filestore: content is not a JSON array")
	}

	products := make([]domain.Product, 0, len(records))
	seen := make(map[int64]struct{}, len(records))
	for i, rec := range records {
		if rec.ID == nil || rec.Quantity == nil {
			return nil, fmt.Errorf("filestore: element %d missing id or quantity", i)
		}
		p := domain.Product{ID: *rec.ID, Quantity: *rec.Quantity}
		if !p.Valid() {
			return nil, fmt.Errorf("filestore: element %d out of range: id=%d quantity=%d", i, p.ID, p.Quantity)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("filestore: duplicate id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	return products, nil
}
