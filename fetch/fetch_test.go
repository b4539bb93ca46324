package fetch_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/cache/memory"
	"github.com/cayleygraph/skos/fetch"
)

const testNQuads = `<http://example.org/c1> <http://www.w3.org/2004/02/skos/core#broader> <http://example.org/c2> .
<http://example.org/c1> <http://www.w3.org/2004/02/skos/core#prefLabel> "one" .
`

func readAll(t *testing.T, r quad.ReadCloser) []quad.Quad {
	defer r.Close()
	quads, err := quad.ReadAll(r)
	require.NoError(t, err)
	return quads
}

func TestFetchHTTP(t *testing.T) {
	var accept, agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept, agent = r.Header.Get("Accept"), r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/n-quads; charset=utf-8")
		w.Write([]byte(testNQuads))
	}))
	defer srv.Close()

	f := fetch.Default()
	f.UserAgent = "test-agent"
	doc, err := f.FetchDocument(context.Background(), srv.URL+"/vocab")
	require.NoError(t, err)
	require.Equal(t, "nquads", doc.Format)
	require.Equal(t, "test-agent", agent)
	require.Contains(t, accept, "application/rdf+xml")
	require.Contains(t, accept, "text/turtle")
	require.Contains(t, accept, "application/ld+json")

	r, err := f.Fetch(context.Background(), srv.URL+"/vocab")
	require.NoError(t, err)
	quads := readAll(t, r)
	require.Len(t, quads, 2)
	require.Equal(t, quad.IRI("http://example.org/c2"), quads[0].Object)
	require.Equal(t, quad.String("one"), quads[1].Object)
}

func TestFetchGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(testNQuads))
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	r, err := fetch.Default().Fetch(context.Background(), srv.URL+"/dump.nq.gz")
	require.NoError(t, err)
	require.Len(t, readAll(t, r), 2)
}

func TestFetchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := fetch.Default().Fetch(context.Background(), srv.URL+"/missing")
	var serr *fetch.StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	f := fetch.Default()
	f.Client.Timeout = 50 * time.Millisecond
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "vocab.ttl")
	require.NoError(t, os.WriteFile(p, []byte(`@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
<http://example.org/c1> a skos:Concept .
`), 0644))

	for _, uri := range []string{p, "file://" + p} {
		doc, err := fetch.Default().FetchDocument(context.Background(), uri)
		require.NoError(t, err, uri)
		require.Equal(t, "turtle", doc.Format)
		r, err := doc.Reader()
		require.NoError(t, err)
		require.Len(t, readAll(t, r), 1)
	}

	_, err := fetch.Default().Fetch(context.Background(), filepath.Join(dir, "missing.nq"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFetchUnsupportedScheme(t *testing.T) {
	_, err := fetch.Default().Fetch(context.Background(), "urn:isbn:0451450523")
	require.Error(t, err)
}

func TestForcedFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/turtle")
		w.Write([]byte(testNQuads))
	}))
	defer srv.Close()

	f := fetch.Default()
	f.Format = "nquads"
	doc, err := f.FetchDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "nquads", doc.Format)

	_, err = (&fetch.Document{Format: "nope"}).Reader()
	require.Error(t, err)
}

var detectTests = []struct {
	name, ctype, uri, data string
	expect                 string
}{
	{name: "turtle", uri: "http://x/a.nq", expect: "turtle"},
	{ctype: "application/rdf+xml; charset=utf-8", uri: "http://x/a.nq", expect: "rdfxml"},
	{ctype: "application/octet-stream", uri: "http://x/a.ttl", expect: "turtle"},
	{uri: "http://x/a.RDF", expect: "rdfxml"},
	{uri: "/data/a.nq.gz", data: "@prefix a: <b> .", expect: "nquads"},
	{uri: "http://x/a.jsonld?x=1", expect: "jsonld"},
	{uri: "http://x/concept/1", data: "  {\"@id\": \"x\"}", expect: "jsonld"},
	{uri: "http://x/concept/1", data: "\xef\xbb\xbf<?xml version=\"1.0\"?>", expect: "rdfxml"},
	{uri: "http://x/concept/1", data: "<rdf:RDF>", expect: "rdfxml"},
	{uri: "http://x/concept/1", data: "@prefix a: <b> .", expect: "turtle"},
	{uri: "http://x/concept/1", data: "PREFIX a: <b>", expect: "turtle"},
	{uri: "http://x/concept/1", data: "<a> <b> <c> .", expect: "nquads"},
	{uri: "http://x/concept/1", data: "", expect: "nquads"},
}

func TestDetectFormat(t *testing.T) {
	for _, c := range detectTests {
		got := fetch.DetectFormat(c.name, c.ctype, c.uri, []byte(c.data))
		require.Equal(t, c.expect, got, "%+v", c)
	}
}

func TestCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/n-quads")
		w.Write([]byte(testNQuads))
	}))
	defer srv.Close()

	store := memory.New(0)
	f := fetch.Cached(fetch.Default(), store)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		r, err := f.Fetch(ctx, srv.URL+"/a")
		require.NoError(t, err)
		require.Len(t, readAll(t, r), 2)
	}
	require.Equal(t, 1, hits)
	require.Equal(t, 2, store.Len())

	format, err := store.Get(ctx, "f:"+srv.URL+"/a")
	require.NoError(t, err)
	require.Equal(t, "nquads", string(format))

	// a failed source fetch is not cached
	_, err = f.Fetch(ctx, "http://127.0.0.1:0/unreachable")
	require.Error(t, err)
	require.Equal(t, 2, store.Len())
}
