package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := NewSignalContext(parent)
	cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
