package skos

import (
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"
)

func TestNormalizers(t *testing.T) {
	for _, c := range []struct {
		in   quad.Value
		def  string
		trim string
	}{
		{quad.IRI("http://x/a/"), "http://x/a/", "http://x/a"},
		{quad.IRI("http://x/a"), "http://x/a", "http://x/a"},
		{quad.BNode("b1"), "_:b1", "_:b1"},
		{quad.String("text"), "text", "text"},
		{quad.LangString{Value: "texte", Lang: "fr"}, "texte", "texte"},
		{nil, "", ""},
	} {
		require.Equal(t, c.def, DefaultNormalizer(c.in), "%v", c.in)
		require.Equal(t, c.trim, TrimSlash(c.in), "%v", c.in)
	}
}

func TestNormalizerByName(t *testing.T) {
	n, err := NormalizerByName("")
	require.NoError(t, err)
	require.Equal(t, "http://x/a/", n(quad.IRI("http://x/a/")))

	n, err = NormalizerByName("trim-slash")
	require.NoError(t, err)
	require.Equal(t, "http://x/a", n(quad.IRI("http://x/a/")))

	_, err = NormalizerByName("nope")
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Contains(t, Normalizers(), "default")

	require.Panics(t, func() { RegisterNormalizer("default", DefaultNormalizer) })
}

func TestNode(t *testing.T) {
	require.Equal(t, quad.BNode("b1"), node("_:b1"))
	require.Equal(t, quad.IRI("urn:a"), node("urn:a"))
	require.Equal(t, "_:b1", DefaultNormalizer(node("_:b1")))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2009, 1, 2, 0, 0, 0, 0, time.UTC)
	for _, v := range []quad.Value{
		quad.String("2009-01-02"),
		quad.TypedString{Value: "2009-01-02T00:00:00Z", Type: "http://www.w3.org/2001/XMLSchema#dateTime"},
		quad.Time(want),
	} {
		got, err := parseDate(v)
		require.NoError(t, err)
		require.True(t, want.Equal(got), "%v: %v", v, got)
	}

	got, err := parseDate(nil)
	require.NoError(t, err)
	require.True(t, got.IsZero())

	_, err = parseDate(quad.String("not a date"))
	require.Error(t, err)
}

func TestErrors(t *testing.T) {
	err := &RecursionLimitError{Depth: 1, URIs: []string{"a", "b", "c", "d", "e"}}
	require.Equal(t, "skos: recursion limit 1 reached, not following a, b, c and 2 more", err.Error())

	err = &RecursionLimitError{Depth: 0, URIs: []string{"a"}}
	require.Equal(t, "skos: recursion limit 0 reached, not following a", err.Error())

	require.True(t, IsNotFound(&NotFoundError{URI: "x"}))
	require.False(t, IsNotFound(&MissingFieldError{Type: "Concept", URI: "x", Field: "prefLabel"}))
	require.Equal(t, `skos: Concept <x> has no prefLabel`, (&MissingFieldError{Type: "Concept", URI: "x", Field: "prefLabel"}).Error())
}
