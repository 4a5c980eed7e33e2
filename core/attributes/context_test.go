package attributes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionattrs/core/attributes"
)

func TestContext(t *testing.T) {
	t.Parallel()

	s, _, _ := newStore(t)

	ctx := attributes.WithStore(context.Background(), s)
	got, ok := attributes.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = attributes.FromContext(context.Background())
	assert.False(t, ok)

	plain := context.Background()
	assert.Equal(t, plain, attributes.WithStore(plain, nil))

	ctx = attributes.WithStore(nil, s)
	_, ok = attributes.FromContext(ctx)
	assert.True(t, ok)
}
