package skos

import (
	"context"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos/graph"
	"github.com/cayleygraph/skos/graph/memstore"
)

func makeEntities() (a, b *Concept, col *Collection) {
	a = NewConcept("urn:a", "A")
	a.Definition = "the letter a"
	a.Notation = "1"
	a.AltLabel = "alpha"
	b = NewConcept("urn:b", "B")
	b.Definition = "the letter b"
	b.Notation = "2"
	b.AltLabel = "beta"
	col = NewCollection("urn:c1", "Letters")
	col.Description = "Some letters"
	col.Date = time.Date(2009, 1, 2, 0, 0, 0, 0, time.UTC)
	col.Members.Update(a, b)
	return a, b, col
}

func reload(t *testing.T, g graph.Graph) *Loader {
	l, err := Load(context.Background(), graph.NewReader(g), DefaultOptions())
	require.NoError(t, err)
	return l
}

func TestBuildRoundTrip(t *testing.T) {
	a, b, col := makeEntities()
	g, err := NewBuilder().Build([]Object{a}, nil)
	require.NoError(t, err)
	require.Equal(t, 16, g.Size())

	l := reload(t, g)
	require.Equal(t, []string{"urn:a", "urn:b", "urn:c1"}, l.Keys())
	for _, want := range []Object{a, b, col} {
		got, err := l.Get(want.URI())
		require.NoError(t, err)
		require.True(t, want.Equal(got), "%v", want)
	}
	ga := getConcept(t, l, "urn:a")
	require.Equal(t, a.Collections.Keys(), ga.Collections.Keys())
}

func TestBuildRelations(t *testing.T) {
	a, b := NewConcept("urn:a", "A"), NewConcept("urn:b", "B")
	c, d := NewConcept("urn:c", "C"), NewConcept("urn:d", "D")
	a.Broader.Add(b)
	a.Related.Add(c)
	d.Synonyms.Add(a)
	cs := NewConceptScheme("urn:s", "S")
	cs.Concepts.Add(b)

	g, err := NewBuilder().Build([]Object{a}, nil)
	require.NoError(t, err)
	require.True(t, g.Has(quad.Quad{Subject: quad.IRI("urn:a"), Predicate: broader, Object: quad.IRI("urn:b")}))
	require.True(t, g.Has(quad.Quad{Subject: quad.IRI("urn:b"), Predicate: narrower, Object: quad.IRI("urn:a")}))
	require.True(t, g.Has(quad.Quad{Subject: quad.IRI("urn:b"), Predicate: inScheme, Object: quad.IRI("urn:s")}))
	// no description, no triple
	require.Empty(t, g.Objects(quad.IRI("urn:s"), dcDescription))

	l := reload(t, g)
	require.Equal(t, []string{"urn:a", "urn:b", "urn:c", "urn:d", "urn:s"}, l.Keys())
	for _, o := range []*Concept{a, b, c, d} {
		got := getConcept(t, l, o.URI())
		require.True(t, o.Equal(got))
		require.Equal(t, o.Broader.Keys(), got.Broader.Keys())
		require.Equal(t, o.Narrower.Keys(), got.Narrower.Keys())
		require.Equal(t, o.Related.Keys(), got.Related.Keys())
		require.Equal(t, o.Synonyms.Keys(), got.Synonyms.Keys())
		require.Equal(t, o.Schemes.Keys(), got.Schemes.Keys())
	}
	// both directions were emitted, so the reloaded pairs fill both sides
	gd := getConcept(t, l, "urn:d")
	require.Equal(t, []string{"urn:a"}, d.Synonyms.Left().Keys())
	require.Empty(t, d.Synonyms.Right().Keys())
	require.Equal(t, []string{"urn:a"}, gd.Synonyms.Left().Keys())
	require.Equal(t, []string{"urn:a"}, gd.Synonyms.Right().Keys())
	require.False(t, d.Synonyms.Equal(gd.Synonyms))
	require.True(t, gd.Synonyms.Has("urn:a"))

	s, err := l.Get("urn:s")
	require.NoError(t, err)
	require.True(t, cs.Equal(s))
}

func TestBuildSkipsEmitted(t *testing.T) {
	a, b, col := makeEntities()
	g := memstore.New()
	bl := NewBuilder()
	_, err := bl.Build([]Object{a, b, col}, g)
	require.NoError(t, err)
	n := g.Size()

	// the type triple marks the entity as emitted
	a.AltLabel = "changed"
	_, err = bl.Build([]Object{a}, g)
	require.NoError(t, err)
	require.Equal(t, n, g.Size())
}

func TestBuildUnknownType(t *testing.T) {
	_, err := NewBuilder().Build([]Object{unknown{object{uri: "urn:x"}}}, nil)
	require.Error(t, err)
}

type unknown struct{ object }

func (o unknown) Equal(other Object) bool { return other != nil && o.uri == other.URI() }

type quadSlice []quad.Quad

func (s *quadSlice) WriteQuad(q quad.Quad) error {
	*s = append(*s, q)
	return nil
}

func (s *quadSlice) WriteQuads(buf []quad.Quad) (int, error) {
	*s = append(*s, buf...)
	return len(buf), nil
}

func TestBuilderWriteTo(t *testing.T) {
	a, _, _ := makeEntities()
	var out quadSlice
	require.NoError(t, NewBuilder().WriteTo(&out, a))
	require.Len(t, out, 16)
	require.Equal(t, quad.Quad{Subject: quad.IRI("urn:a"), Predicate: rdfType, Object: typeConcept}, out[0])
}
