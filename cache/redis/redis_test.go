package redis

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/cache/cachetest"
)

// These tests need a running server; set SKOS_TEST_REDIS to its address.
func testAddr(t testing.TB) string {
	addr := os.Getenv("SKOS_TEST_REDIS")
	if addr == "" {
		t.Skip("SKOS_TEST_REDIS is not set")
	}
	return addr
}

func TestRedisAll(t *testing.T) {
	addr := testAddr(t)
	n := 0
	cachetest.TestAll(t, func(t testing.TB) (cache.Store, func()) {
		n++
		prefix := "skos-test:" + strconv.FormatInt(time.Now().UnixNano(), 36) + ":" + strconv.Itoa(n) + ":"
		s, err := Open(addr, cache.Options{"prefix": prefix, "ttl": "1m"})
		require.NoError(t, err)
		require.NoError(t, s.(*Store).Ping(context.Background()))
		return s, func() { s.Close() }
	})
}

func TestRedisOptions(t *testing.T) {
	_, err := Open("localhost:6379", cache.Options{"db": "zero"})
	require.Error(t, err)
	_, err = Open("localhost:6379", cache.Options{"ttl": "soon"})
	require.Error(t, err)

	s, err := Open("localhost:6379", cache.Options{"ttl": 30})
	require.NoError(t, err)
	defer s.Close()
	require.Equal(t, 30*time.Second, s.(*Store).ttl)
	require.Equal(t, "skos:", s.(*Store).prefix)
}
