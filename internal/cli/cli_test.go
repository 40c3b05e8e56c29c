package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/config"
	"github.com/aretw0/graft/internal/logging"
	"github.com/aretw0/graft/pkg/adapters/memory"
)

const foxYAML = `
name: Fox
root:
  children:
    - name: Hat
      active: false
      features:
        - type: toggle
          name: Clothes/Hat
          state:
            - type: object_toggle
              object: Hat
`

const brokenYAML = `
name: Broken
root:
  features:
    - type: socket
`

// project lays out a graft project using the in-memory scratch backend.
func project(t *testing.T, avatars map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "avatars"), 0755))
	for name, content := range avatars {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "avatars", name+".yaml"), []byte(content), 0644))
	}
	cfg := "scratch:\n  backend: memory\nmetrics_file: metrics.prom\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "graft.yaml"), []byte(cfg), 0644))
	return dir
}

func newEnv(t *testing.T, dir string) *Environment {
	t.Helper()
	var errOut bytes.Buffer
	old := stderr
	stderr = &errOut
	t.Cleanup(func() { stderr = old })

	env, err := NewEnvironment(Options{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(env.Close)
	return env
}

func TestRunBuild(t *testing.T) {
	dir := project(t, map[string]string{"Fox": foxYAML})
	env := newEnv(t, dir)

	var out bytes.Buffer
	require.NoError(t, env.RunBuild(context.Background(), &out, BuildOptions{}))

	assert.Contains(t, out.String(), "# Fox")
	assert.Contains(t, out.String(), "Graft/Toggle/Clothes/Hat")
	assert.Contains(t, out.String(), "bits used.")

	assets, err := env.Store.List(context.Background(), "Fox")
	require.NoError(t, err)
	assert.NotEmpty(t, assets)

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "graft_builds_total")
}

func TestRunBuild_ContinuesPastFailures(t *testing.T) {
	dir := project(t, map[string]string{"Fox": foxYAML, "Broken": brokenYAML})
	env := newEnv(t, dir)

	var out bytes.Buffer
	err := env.RunBuild(context.Background(), &out, BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.NotContains(t, err.Error(), "Fox:")
	assert.Contains(t, out.String(), "# Fox")
}

func TestRunBuild_Quiet(t *testing.T) {
	env := newEnv(t, project(t, map[string]string{"Fox": foxYAML}))

	var out bytes.Buffer
	require.NoError(t, env.RunBuild(context.Background(), &out, BuildOptions{Avatars: []string{"Fox"}, Quiet: true}))
	assert.Empty(t, out.String())
}

func TestRunBuild_NoAvatars(t *testing.T) {
	env := newEnv(t, project(t, nil))
	err := env.RunBuild(context.Background(), &bytes.Buffer{}, BuildOptions{})
	assert.ErrorContains(t, err, "no avatars found")
}

func TestRunValidate(t *testing.T) {
	env := newEnv(t, project(t, map[string]string{"Fox": foxYAML, "Broken": brokenYAML}))

	var out bytes.Buffer
	err := env.RunValidate(context.Background(), &out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, out.String(), "Fox: 1 features OK")
}

func TestRunGraph(t *testing.T) {
	env := newEnv(t, project(t, map[string]string{"Fox": foxYAML}))

	var out bytes.Buffer
	require.NoError(t, env.RunGraph(context.Background(), &out, GraphOptions{Avatar: "Fox"}))
	assert.True(t, strings.HasPrefix(out.String(), "graph TD"), out.String())
	assert.NotContains(t, out.String(), "classDef current")

	// graph never writes to the configured scratch store.
	assets, err := env.Store.List(context.Background(), "Fox")
	require.NoError(t, err)
	assert.Empty(t, assets)

	out.Reset()
	require.NoError(t, env.RunGraph(context.Background(), &out, GraphOptions{
		Avatar: "Fox",
		Set:    []string{"Graft/Toggle/Clothes/Hat=1"},
	}))
	assert.Contains(t, out.String(), "classDef current")
}

func TestRunGraph_UnknownParam(t *testing.T) {
	env := newEnv(t, project(t, map[string]string{"Fox": foxYAML}))
	err := env.RunGraph(context.Background(), &bytes.Buffer{}, GraphOptions{Avatar: "Fox", Set: []string{"Nope=1"}})
	assert.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    map[string]float64
		wantErr bool
	}{
		{name: "values", in: []string{"A=1", " B = 0.5"}, want: map[string]float64{"A": 1, "B": 0.5}},
		{name: "empty", in: nil, want: map[string]float64{}},
		{name: "missing equals", in: []string{"A"}, wantErr: true},
		{name: "missing name", in: []string{"=1"}, wantErr: true},
		{name: "not a number", in: []string{"A=x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssignments(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListFeatures(t *testing.T) {
	env := newEnv(t, project(t, nil))
	var out bytes.Buffer
	env.ListFeatures(&out)
	assert.Contains(t, out.String(), "toggle")
	assert.Contains(t, out.String(), "v1")
}

func TestRunWatch_StopsOnCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("watch test relies on filesystem events")
	}
	env := newEnv(t, project(t, map[string]string{"Fox": foxYAML}))
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	require.NoError(t, env.RunWatch(ctx, &out, BuildOptions{}))
	assert.Contains(t, out.String(), "# Fox")
}

func TestRunWatch_RequiresWatchableSource(t *testing.T) {
	src, err := memory.NewSource()
	require.NoError(t, err)
	env := &Environment{Config: config.DefaultConfig(), Logger: logging.NewNop(), Source: src}

	err = env.RunWatch(context.Background(), &bytes.Buffer{}, BuildOptions{})
	assert.ErrorContains(t, err, "does not support watching")
}
