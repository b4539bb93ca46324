package lru

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEviction(t *testing.T) {
	c := New[int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	_, ok := c.Get("a") // a is now the most recent
	require.True(t, ok)
	c.Put("c", 3)

	_, ok = c.Get("b")
	require.False(t, ok)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 2, c.Len())
}

func TestPutReplaces(t *testing.T) {
	c := New[string](2)
	c.Put("a", "x")
	c.Put("a", "y")
	v, _ := c.Get("a")
	require.Equal(t, "y", v)
	require.Equal(t, 1, c.Len())

	c.Del("a")
	c.Del("missing")
	require.Equal(t, 0, c.Len())
}

func TestUnbounded(t *testing.T) {
	c := New[int](0)
	for i, k := range []string{"a", "b", "c", "d"} {
		c.Put(k, i)
	}
	require.Equal(t, 4, c.Len())
}
