package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/graft/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.AssetStore as one Redis hash per avatar.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix (default "graft:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL expires an avatar's scratch area after ttl without writes.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// NewFromClient creates a store on an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "graft:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(avatar string) string { return s.prefix + "assets:" + avatar }

// Reset deletes the avatar's hash.
func (s *Store) Reset(ctx context.Context, avatar string) error {
	if err := s.client.Del(ctx, s.key(avatar)).Err(); err != nil {
		return fmt.Errorf("redis reset %s: %w", avatar, err)
	}
	return nil
}

// Save writes one asset field.
func (s *Store) Save(ctx context.Context, avatar, name string, data []byte) error {
	key := s.key(avatar)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, name, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save %s/%s: %w", avatar, name, err)
	}
	return nil
}

// Load reads one asset field.
func (s *Store) Load(ctx context.Context, avatar, name string) ([]byte, error) {
	data, err := s.client.HGet(ctx, s.key(avatar), name).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load %s/%s: %w", avatar, name, err)
	}
	return data, nil
}

// List returns the avatar's asset names, sorted.
func (s *Store) List(ctx context.Context, avatar string) ([]string, error) {
	names, err := s.client.HKeys(ctx, s.key(avatar)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list %s: %w", avatar, err)
	}
	sort.Strings(names)
	return names, nil
}
