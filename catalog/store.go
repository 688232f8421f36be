package catalog

import (
	"fmt"
	"iter"
)

// Store owns the authoritative mapping from id to Entry. Mutation is only
// permitted during the catalog's loading phase; after that every operation
// is a pure read, so a finalized store is safe for concurrent readers.
type Store struct {
	entries map[string]*Entry
	order   []string
}

// NewStore creates an empty entry store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Put inserts a new entry. It fails with *DuplicateIDError when the id is
// already present and *SelfRelationError when the entry relates to itself.
// A failed Put leaves the store unchanged.
func (s *Store) Put(e *Entry) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("put entry: empty id")
	}
	if e.Relates(e.ID) {
		return &SelfRelationError{ID: e.ID}
	}
	if _, exists := s.entries[e.ID]; exists {
		return &DuplicateIDError{ID: e.ID}
	}

	s.entries[e.ID] = e.clone()
	s.order = append(s.order, e.ID)
	return nil
}

// Get returns the entry for id, or ErrNotFound.
func (s *Store) Get(id string) (*Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return e, nil
}

// Has reports whether an entry with the given id exists.
func (s *Store) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.order)
}

// All returns a lazy sequence over all entries in insertion order. Each
// range starts a fresh traversal.
func (s *Store) All() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, id := range s.order {
			if !yield(s.entries[id]) {
				return
			}
		}
	}
}

// ByCategory returns a lazy sequence over entries of the given category,
// preserving insertion order.
func (s *Store) ByCategory(c Category) iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, id := range s.order {
			e := s.entries[id]
			if e.Category != c {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}
