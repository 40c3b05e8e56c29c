package ports

import "context"

// AssetStore is the scratch area generated assets are written to. Each avatar
// has its own area; Reset deletes it entirely.
type AssetStore interface {
	// Reset deletes every asset of the avatar.
	Reset(ctx context.Context, avatar string) error

	// Save writes one serialized asset.
	Save(ctx context.Context, avatar, name string, data []byte) error

	// Load reads one asset. Returns domain.ErrAssetNotFound when absent.
	Load(ctx context.Context, avatar, name string) ([]byte, error)

	// List returns the asset names of the avatar, sorted.
	List(ctx context.Context, avatar string) ([]string, error)
}
