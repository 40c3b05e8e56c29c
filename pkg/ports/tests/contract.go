package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/ports"
)

// AssetStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.AssetStore.
func AssetStoreContractTest(t *testing.T, store ports.AssetStore) {
	t.Helper()
	ctx := context.Background()

	// 1. Empty area
	t.Run("List_Empty", func(t *testing.T) {
		names, err := store.List(ctx, "contract-avatar")
		if err != nil {
			t.Fatalf("unexpected error listing: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected empty area, got %v", names)
		}
	})

	// 2. Save and Load
	t.Run("Save_Load", func(t *testing.T) {
		if err := store.Save(ctx, "contract-avatar", "fx.controller", []byte("layers: []")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := store.Save(ctx, "contract-avatar", "clips/Hat On.clip", []byte("curves: []")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := store.Load(ctx, "contract-avatar", "fx.controller")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if string(got) != "layers: []" {
			t.Errorf("content mismatch: got %q", got)
		}
		names, err := store.List(ctx, "contract-avatar")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		want := []string{"clips/Hat On.clip", "fx.controller"}
		if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
			t.Errorf("expected %v, got %v", want, names)
		}
	})

	// 3. Areas are isolated per avatar
	t.Run("Isolation", func(t *testing.T) {
		names, err := store.List(ctx, "other-avatar")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected other area empty, got %v", names)
		}
	})

	// 4. Load missing
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-avatar", "missing")
		if !errors.Is(err, domain.ErrAssetNotFound) {
			t.Errorf("expected ErrAssetNotFound, got %v", err)
		}
	})

	// 5. Reset
	t.Run("Reset", func(t *testing.T) {
		if err := store.Reset(ctx, "contract-avatar"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		names, err := store.List(ctx, "contract-avatar")
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("expected empty area after reset, got %v", names)
		}
		if err := store.Reset(ctx, "never-built"); err != nil {
			t.Errorf("reset of an empty area failed: %v", err)
		}
	})
}

// BuildLockerContractTest verifies that a second Lock on a held key does not
// succeed while the first holder keeps it, and succeeds after unlock.
func BuildLockerContractTest(t *testing.T, locker ports.BuildLocker) {
	t.Helper()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "contract-avatar", time.Minute)
	if err != nil {
		t.Fatalf("first lock failed: %v", err)
	}

	t.Run("Held", func(t *testing.T) {
		shortCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		second, err := locker.Lock(shortCtx, "contract-avatar", time.Minute)
		if err == nil {
			_ = second(ctx)
			t.Fatal("expected second lock to fail while held")
		}
		if !errors.Is(err, domain.ErrBuildInProgress) && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Other keys", func(t *testing.T) {
		other, err := locker.Lock(ctx, "other-avatar", time.Minute)
		if err != nil {
			t.Fatalf("lock on other key failed: %v", err)
		}
		_ = other(ctx)
	})

	t.Run("Released", func(t *testing.T) {
		if err := unlock(ctx); err != nil {
			t.Fatalf("unlock failed: %v", err)
		}
		again, err := locker.Lock(ctx, "contract-avatar", time.Minute)
		if err != nil {
			t.Fatalf("lock after unlock failed: %v", err)
		}
		_ = again(ctx)
	})
}
