// Package cachetest is a conformance suite for cache.Store implementations.
package cachetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/cache"
)

type DatabaseFunc func(t testing.TB) (cache.Store, func())

func TestAll(t *testing.T, gen DatabaseFunc) {
	t.Run("put get", func(t *testing.T) { TestPutGet(t, gen) })
	t.Run("missing", func(t *testing.T) { TestMissing(t, gen) })
	t.Run("overwrite", func(t *testing.T) { TestOverwrite(t, gen) })
	t.Run("concurrent", func(t *testing.T) { TestConcurrent(t, gen) })
}

func TestPutGet(t testing.TB, gen DatabaseFunc) {
	s, closer := gen(t)
	defer closer()
	ctx := context.Background()

	data := []byte("<a> <b> <c> .\n")
	require.NoError(t, s.Put(ctx, "d:http://example.org/a", data))
	got, err := s.Get(ctx, "d:http://example.org/a")
	require.NoError(t, err)
	require.Equal(t, data, got)

	// the store must not alias caller buffers
	data[0] = 'x'
	got, err = s.Get(ctx, "d:http://example.org/a")
	require.NoError(t, err)
	require.Equal(t, byte('<'), got[0])

	require.NoError(t, s.Put(ctx, "empty", []byte{}))
	got, err = s.Get(ctx, "empty")
	require.NoError(t, err)
	require.Len(t, got, 0)
}

func TestMissing(t testing.TB, gen DatabaseFunc) {
	s, closer := gen(t)
	defer closer()
	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, cache.ErrNotFound)
}

func TestOverwrite(t testing.TB, gen DatabaseFunc) {
	s, closer := gen(t)
	defer closer()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("one")))
	require.NoError(t, s.Put(ctx, "k", []byte("two")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "two", string(got))
}

func TestConcurrent(t testing.TB, gen DatabaseFunc) {
	s, closer := gen(t)
	defer closer()
	ctx := context.Background()

	keys := []string{"a", "b", "c", "d"}
	var wg sync.WaitGroup
	errs := make(chan error, len(keys)*2)
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			if err := s.Put(ctx, k, []byte(k)); err != nil {
				errs <- err
				return
			}
			if _, err := s.Get(ctx, k); err != nil {
				errs <- err
			}
		}(k)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
