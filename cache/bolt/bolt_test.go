package bolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/cache/cachetest"
)

func TestBoltAll(t *testing.T) {
	cachetest.TestAll(t, func(t testing.TB) (cache.Store, func()) {
		s, err := Open(t.TempDir(), nil)
		require.NoError(t, err)
		return s, func() { s.Close() }
	})
}

func TestBoltReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(dir, cache.Options{"timeout": "2s"})
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(v))
}
