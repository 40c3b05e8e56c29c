package ports

import (
	"context"

	"github.com/aretw0/graft/pkg/scene"
)

// AvatarSource loads avatars with their features and authored assets.
type AvatarSource interface {
	// Load returns the avatar by name, or domain.ErrAvatarNotFound.
	Load(ctx context.Context, name string) (*scene.Avatar, error)

	// List returns the available avatar names, sorted.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for the watch command's rebuild loop.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying data changes.
	// It abstracts away the specific event details, signaling only that a rebuild is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
