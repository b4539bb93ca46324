package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos"
)

func TestParseDepth(t *testing.T) {
	for _, c := range []struct {
		in   string
		want int
		err  bool
	}{
		{in: "", want: 0},
		{in: "0", want: 0},
		{in: " 3 ", want: 3},
		{in: "-1", want: -1},
		{in: "inf", want: -1},
		{in: "Infinite", want: -1},
		{in: "+Inf", want: -1},
		{in: "-2", err: true},
		{in: "deep", err: true},
		{in: "1.5", err: true},
	} {
		got, err := ParseDepth(c.in)
		if c.err {
			var cerr *skos.ConfigurationError
			require.ErrorAs(t, err, &cerr, "%q", c.in)
			continue
		}
		require.NoError(t, err, "%q", c.in)
		require.Equal(t, c.want, got, "%q", c.in)
	}
}

func TestDefaults(t *testing.T) {
	c, err := Load(New(), "")
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, c.Fetch.Timeout)
	require.Equal(t, "127.0.0.1:64280", c.Address())

	opts, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, 0, opts.MaxDepth)
	require.NotNil(t, opts.Normalize)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skos.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
load:
  depth: inf
  flat: true
  normalize: trim-slash
fetch:
  timeout: 5s
  user_agent: test
cache:
  backend: memory
  size: 10
http:
  port: 8080
`), 0644))

	c, err := Load(New(), path)
	require.NoError(t, err)
	require.True(t, c.Load.Flat)
	require.Equal(t, 5*time.Second, c.Fetch.Timeout)
	require.Equal(t, "test", c.Fetch.UserAgent)
	require.Equal(t, "memory", c.Cache.Backend)
	require.Equal(t, 10, c.Cache.Size)
	require.Equal(t, 8080, c.HTTP.Port)

	opts, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, -1, opts.MaxDepth)
	require.True(t, opts.Flat)
}

func TestEnv(t *testing.T) {
	t.Setenv("SKOS_LOAD_DEPTH", "2")
	c, err := Load(New(), "")
	require.NoError(t, err)
	opts, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, 2, opts.MaxDepth)
}

func TestInvalid(t *testing.T) {
	v := New()
	v.Set(KeyLoadNormalize, "nope")
	_, err := Decode(v)
	var cerr *skos.ConfigurationError
	require.ErrorAs(t, err, &cerr)

	v = New()
	v.Set(KeyLoadDepth, "deep")
	_, err = Decode(v)
	require.ErrorAs(t, err, &cerr)
}

func TestOptions(t *testing.T) {
	c := &Config{
		Load: LoadConfig{Depth: "unlimited", Flat: true, Normalize: "default"},
		HTTP: HTTPConfig{Host: "0.0.0.0", Port: 80},
	}
	opts, err := c.Options()
	require.NoError(t, err)
	require.Equal(t, -1, opts.MaxDepth)
	require.True(t, opts.Flat)
	require.Equal(t, "0.0.0.0:80", c.Address())

	c.Load.Normalize = "nope"
	_, err = c.Options()
	var cerr *skos.ConfigurationError
	require.ErrorAs(t, err, &cerr)
}
