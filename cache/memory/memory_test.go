package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/cache/cachetest"
)

func TestMemoryAll(t *testing.T) {
	cachetest.TestAll(t, func(t testing.TB) (cache.Store, func()) {
		return New(16), func() {}
	})
}

func TestMemoryEvicts(t *testing.T) {
	s := New(1)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("2")))
	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, cache.ErrNotFound)
	require.Equal(t, 1, s.Len())
}

func TestMemoryRegistered(t *testing.T) {
	s, err := cache.Open(Type, "", cache.Options{"size": 2})
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))
	v, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(v))

	_, err = cache.Open(Type, "", cache.Options{"size": "two"})
	require.Error(t, err)
}
