package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/scene"
)

// Source implements ports.AvatarSource over avatars built in code.
type Source struct {
	mu      sync.RWMutex
	avatars map[string]*scene.Avatar
}

// NewSource creates a source holding the given avatars.
func NewSource(avatars ...*scene.Avatar) (*Source, error) {
	s := &Source{avatars: make(map[string]*scene.Avatar)}
	for _, a := range avatars {
		if a.Name == "" {
			return nil, fmt.Errorf("avatar missing name")
		}
		s.avatars[a.Name] = a
	}
	return s, nil
}

// Load returns the avatar by name.
func (s *Source) Load(ctx context.Context, name string) (*scene.Avatar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.avatars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAvatarNotFound, name)
	}
	return a, nil
}

// List returns the avatar names, sorted for deterministic output.
func (s *Source) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.avatars))
	for name := range s.avatars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
