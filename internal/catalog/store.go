package catalog

import (
	"context"
	"sync/atomic"
)

// Store holds the current catalog snapshot. Readers get whole snapshots; a
// reload swaps the pointer, so no reader ever sees a half-built table.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store holding c
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Catalog returns the current snapshot
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Swap replaces the snapshot and returns the previous one
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.current.Swap(c)
}

// Reload rebuilds from l and swaps on success. On failure the previous
// snapshot stays in place.
func (s *Store) Reload(ctx context.Context, l *Loader) error {
	c, err := l.Load(ctx)
	if err != nil {
		return err
	}
	s.Swap(c)
	return nil
}
