package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/graft/pkg/domain"
)

// Store implements ports.AssetStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string][]byte),
	}
}

// Reset deletes the avatar's scratch area.
func (s *Store) Reset(ctx context.Context, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, avatar)
	return nil
}

// Save persists one asset in memory.
func (s *Store) Save(ctx context.Context, avatar, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	area, ok := s.data[avatar]
	if !ok {
		area = make(map[string][]byte)
		s.data[avatar] = area
	}
	// Copy to ensure isolation, similar to serialization
	area[name] = append([]byte(nil), data...)
	return nil
}

// Load retrieves one asset.
func (s *Store) Load(ctx context.Context, avatar, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[avatar][name]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return append([]byte(nil), data...), nil
}

// List returns the avatar's asset names, sorted.
func (s *Store) List(ctx context.Context, avatar string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data[avatar]))
	for name := range s.data[avatar] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
