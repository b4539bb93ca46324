// Package graphtest is a conformance suite for graph.Graph implementations.
package graphtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/graph"
)

// DatabaseFunc creates an empty graph that parses documents through f.
type DatabaseFunc func(t testing.TB, f graph.Fetcher) graph.Graph

func TestAll(t *testing.T, gen DatabaseFunc) {
	t.Run("load one quad", func(t *testing.T) { TestLoadOneQuad(t, gen) })
	t.Run("duplicates", func(t *testing.T) { TestDuplicates(t, gen) })
	t.Run("lookups", func(t *testing.T) { TestLookups(t, gen) })
	t.Run("typed values", func(t *testing.T) { TestTypedValues(t, gen) })
	t.Run("parse layers", func(t *testing.T) { TestParseLayers(t, gen) })
	t.Run("parse error", func(t *testing.T) { TestParseError(t, gen) })
}

func MakeWriter(t testing.TB, g graph.Graph, data ...quad.Quad) quad.Writer {
	w := graph.NewWriter(g)
	if len(data) > 0 {
		n, err := w.WriteQuads(data)
		require.NoError(t, err)
		require.Equal(t, len(data), n)
	}
	return w
}

// MakeQuadSet returns a small taxonomy-shaped graph.
//
//	A --broader--> B --broader--> D
//	C --broader--> B
//	A --related--> C
func MakeQuadSet() []quad.Quad {
	return []quad.Quad{
		quad.MakeIRI("A", "broader", "B", ""),
		quad.MakeIRI("C", "broader", "B", ""),
		quad.MakeIRI("B", "broader", "D", ""),
		quad.MakeIRI("A", "related", "C", ""),
		quad.Make(quad.IRI("A"), quad.IRI("label"), "a", nil),
		quad.Make(quad.IRI("B"), quad.IRI("label"), "b", nil),
		quad.Make(quad.IRI("C"), quad.IRI("label"), "c", nil),
		quad.Make(quad.IRI("A"), quad.IRI("label"), quad.LangString{Value: "ah", Lang: "fr"}, nil),
	}
}

// StaticFetcher serves fixed quad sets by URI and fails for unknown ones.
type StaticFetcher struct {
	Docs  map[string][]quad.Quad
	Calls []string
}

func (f *StaticFetcher) Fetch(_ context.Context, uri string) (quad.ReadCloser, error) {
	f.Calls = append(f.Calls, uri)
	data, ok := f.Docs[uri]
	if !ok {
		return nil, fmt.Errorf("no document at %q", uri)
	}
	return graph.NopCloser(quad.NewReader(data)), nil
}

func TestLoadOneQuad(t testing.TB, gen DatabaseFunc) {
	g := gen(t, nil)
	q := quad.MakeIRI("A", "broader", "B", "")
	require.NoError(t, g.AddQuad(q))
	require.Equal(t, 1, g.Size())
	require.True(t, g.Has(q))
	require.False(t, g.Has(quad.MakeIRI("B", "broader", "A", "")))
	require.Equal(t, []quad.Quad{q}, g.Quads())
}

func TestDuplicates(t testing.TB, gen DatabaseFunc) {
	g := gen(t, nil)
	q := quad.MakeIRI("A", "broader", "B", "")
	MakeWriter(t, g, q, q)
	require.Equal(t, 1, g.Size())

	// labels do not take part in identity
	require.NoError(t, g.AddQuad(quad.MakeIRI("A", "broader", "B", "ctx")))
	require.Equal(t, 1, g.Size())
	require.True(t, g.Has(quad.MakeIRI("A", "broader", "B", "other")))
}

func TestLookups(t testing.TB, gen DatabaseFunc) {
	g := gen(t, nil)
	MakeWriter(t, g, MakeQuadSet()...)
	require.Equal(t, len(MakeQuadSet()), g.Size())

	require.Equal(t, []quad.Value{quad.IRI("A"), quad.IRI("C")},
		g.Subjects(quad.IRI("broader"), quad.IRI("B")))
	require.Empty(t, g.Subjects(quad.IRI("broader"), quad.IRI("A")))
	require.Empty(t, g.Subjects(quad.IRI("missing"), quad.IRI("B")))

	require.Equal(t, []quad.Value{quad.IRI("D")}, g.Objects(quad.IRI("B"), quad.IRI("broader")))
	require.Equal(t, []quad.Value{quad.String("a"), quad.LangString{Value: "ah", Lang: "fr"}},
		g.Objects(quad.IRI("A"), quad.IRI("label")))
	require.Empty(t, g.Objects(quad.IRI("D"), quad.IRI("broader")))

	require.Equal(t, []graph.Edge{
		{Subject: quad.IRI("A"), Object: quad.IRI("B")},
		{Subject: quad.IRI("C"), Object: quad.IRI("B")},
		{Subject: quad.IRI("B"), Object: quad.IRI("D")},
	}, g.SubjectObjects(quad.IRI("broader")))
	require.Empty(t, g.SubjectObjects(quad.IRI("narrower")))
}

func TestTypedValues(t testing.TB, gen DatabaseFunc) {
	g := gen(t, nil)
	MakeWriter(t, g,
		quad.Make(quad.IRI("X"), quad.IRI("id"), quad.String("1"), nil),
		quad.Make(quad.IRI("X"), quad.IRI("id"), quad.IRI("1"), nil),
		quad.Make(quad.IRI("X"), quad.IRI("id"), quad.BNode("1"), nil),
	)
	// a string, an IRI and a blank node with the same text are different nodes
	require.Equal(t, 3, g.Size())
	require.Equal(t, []quad.Value{quad.IRI("X")}, g.Subjects(quad.IRI("id"), quad.BNode("1")))
}

func TestParseLayers(t testing.TB, gen DatabaseFunc) {
	f := &StaticFetcher{Docs: map[string][]quad.Quad{
		"http://ex/b": {quad.MakeIRI("B", "broader", "D", "")},
		"http://ex/d": {quad.MakeIRI("D", "broader", "E", ""), quad.MakeIRI("B", "broader", "D", "")},
	}}
	g := gen(t, f)
	MakeWriter(t, g, quad.MakeIRI("A", "broader", "B", ""))

	ctx := context.Background()
	l1, err := g.Parse(ctx, "http://ex/b")
	require.NoError(t, err)
	require.Equal(t, 1, l1.Size())
	require.Equal(t, 2, g.Size())

	l2, err := l1.Parse(ctx, "http://ex/d")
	require.NoError(t, err)
	require.Equal(t, 2, l2.Size())
	require.Equal(t, 2, l1.Size())
	require.Equal(t, 3, g.Size())
	require.True(t, g.Has(quad.MakeIRI("D", "broader", "E", "")))
	require.False(t, l2.Has(quad.MakeIRI("A", "broader", "B", "")))

	// writes to a layer reach every ancestor
	require.NoError(t, l2.AddQuad(quad.MakeIRI("E", "broader", "F", "")))
	require.True(t, l1.Has(quad.MakeIRI("E", "broader", "F", "")))
	require.True(t, g.Has(quad.MakeIRI("E", "broader", "F", "")))
	require.Equal(t, []string{"http://ex/b", "http://ex/d"}, f.Calls)
}

func TestParseError(t testing.TB, gen DatabaseFunc) {
	g := gen(t, &StaticFetcher{})
	MakeWriter(t, g, quad.MakeIRI("A", "broader", "B", ""))
	_, err := g.Parse(context.Background(), "http://ex/missing")
	require.Error(t, err)
	require.Equal(t, 1, g.Size())
}
