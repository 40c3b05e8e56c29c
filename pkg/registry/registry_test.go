package registry_test

import (
	"testing"

	"github.com/aretw0/graft/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := registry.New[string, int]()
	require.NoError(t, r.Register("b", 2))
	require.NoError(t, r.Register("a", 1))

	err := r.Register("a", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	v, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v, "duplicate registration must not replace the original")

	_, ok = r.Lookup("c")
	assert.False(t, ok)
	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, 2, r.Len())

	assert.Panics(t, func() { r.MustRegister("b", 0) })
}
