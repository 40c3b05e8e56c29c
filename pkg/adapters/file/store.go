// Package file provides filesystem adapters: a scratch AssetStore rooted in a
// directory and an AvatarSource reading YAML avatar documents.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/graft/pkg/domain"
)

// DefaultScratchDir is used when NewStore is given an empty path.
var DefaultScratchDir = filepath.Join(".graft", "generated")

// Store implements ports.AssetStore with one directory per avatar.
// Asset names may contain slashes; they become nested directories.
type Store struct {
	BasePath string
}

// NewStore creates a Store under basePath.
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultScratchDir
	}
	return &Store{BasePath: basePath}
}

func (s *Store) areaPath(avatar string) (string, error) {
	if avatar == "" {
		return "", fmt.Errorf("avatar cannot be empty")
	}
	if strings.ContainsAny(avatar, `/\`) || avatar == "." || avatar == ".." {
		return "", fmt.Errorf("invalid avatar name %q", avatar)
	}
	return filepath.Join(s.BasePath, avatar), nil
}

func (s *Store) assetPath(avatar, name string) (string, error) {
	area, err := s.areaPath(avatar)
	if err != nil {
		return "", err
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	return filepath.Join(area, clean), nil
}

// Reset removes the avatar's directory.
func (s *Store) Reset(ctx context.Context, avatar string) error {
	area, err := s.areaPath(avatar)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(area); err != nil {
		return fmt.Errorf("failed to reset scratch area: %w", err)
	}
	return nil
}

// Save writes one asset, creating parent directories as needed.
func (s *Store) Save(ctx context.Context, avatar, name string, data []byte) error {
	path, err := s.assetPath(avatar, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to ensure asset directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write asset %s: %w", name, err)
	}
	return nil
}

// Load reads one asset.
func (s *Store) Load(ctx context.Context, avatar, name string) ([]byte, error) {
	path, err := s.assetPath(avatar, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, name)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// List returns every asset of the avatar as slash-separated names, sorted.
func (s *Store) List(ctx context.Context, avatar string) ([]string, error) {
	area, err := s.areaPath(avatar)
	if err != nil {
		return nil, err
	}
	names := []string{}
	err = filepath.WalkDir(area, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(area, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
