package catalog

import "sync/atomic"

// Store hands out the current catalog snapshot. Replacing the snapshot is a single
// pointer swap, so a reader holding a snapshot never observes a partial reload.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a store serving initial, which may be nil.
func NewStore(initial *Catalog) *Store {
	s := &Store{}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Load returns the current snapshot, or nil before the first successful load.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Snapshot returns the current snapshot or ErrUnavailable.
func (s *Store) Snapshot() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrUnavailable
	}
	return c, nil
}

// Swap installs c and returns the snapshot it replaced.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.current.Swap(c)
}
