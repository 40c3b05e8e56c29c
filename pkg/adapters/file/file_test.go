package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/pkg/adapters/file"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/ports/tests"
)

const foxYAML = `
name: Fox
root:
  children:
    - name: Body
      components:
        - type: skinned_mesh
          blendshapes:
            - name: Smile
    - name: Hat
      active: false
      features:
        - type: toggle
          name: Clothes/Hat
          saved: true
          state:
            - type: object_toggle
              object: Hat
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestStore_Contract(t *testing.T) {
	tests.AssetStoreContractTest(t, file.NewStore(t.TempDir()))
}

func TestStore_RejectsEscapingNames(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()
	for _, name := range []string{"../outside.yaml", "", "/etc/passwd"} {
		assert.Error(t, store.Save(ctx, "Fox", name, []byte("x")), name)
	}
	assert.Error(t, store.Save(ctx, "../Fox", "a.yaml", []byte("x")))
}

func TestStore_NestedNamesOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	require.NoError(t, store.Save(context.Background(), "Fox", "clips/Graft/Hat On.yaml", []byte("curves: []")))
	_, err := os.Stat(filepath.Join(dir, "Fox", "clips", "Graft", "Hat On.yaml"))
	assert.NoError(t, err)
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Fox.yaml", foxYAML)
	writeFile(t, dir, "notes.txt", "ignored")
	src := file.NewSource(dir)
	ctx := context.Background()

	names, err := src.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fox"}, names)

	av, err := src.Load(ctx, "Fox")
	require.NoError(t, err)
	assert.Equal(t, "Fox", av.Name)
	hat, ok := av.Root.Find("Hat")
	require.True(t, ok)
	assert.False(t, hat.Active)

	instances := av.Features()
	require.Len(t, instances, 1)
	tog, ok := instances[0].Model.(feature.Toggle)
	require.True(t, ok)
	assert.Equal(t, "Clothes/Hat", tog.Name)
	assert.Equal(t, "Hat", instances[0].Owner)
}

func TestSource_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Wolf.yaml", "name: Fox\nroot: {}\n")
	writeFile(t, dir, "Broken.yaml", "name: [\n")
	src := file.NewSource(dir)
	ctx := context.Background()

	_, err := src.Load(ctx, "Missing")
	assert.True(t, errors.Is(err, domain.ErrAvatarNotFound))

	_, err = src.Load(ctx, "Wolf")
	assert.ErrorContains(t, err, `declares avatar "Fox"`)

	_, err = src.Load(ctx, "Broken")
	assert.Error(t, err)

	names, err := file.NewSource(filepath.Join(dir, "nope")).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSource_Watch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping filesystem watch test in short mode")
	}
	dir := t.TempDir()
	writeFile(t, dir, "Fox.yaml", foxYAML)
	src := file.NewSource(dir, file.WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := src.Watch(ctx)
	require.NoError(t, err)

	writeFile(t, dir, "Fox.yaml", foxYAML+"\n")
	writeFile(t, dir, "Fox.yaml", foxYAML+"\n\n")
	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signaled")
	}

	cancel()
	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
