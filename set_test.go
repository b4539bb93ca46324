package skos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAddDiscard(t *testing.T) {
	s := NewSet[*Concept]()
	a := NewConcept("urn:a", "A")

	s.Add(a)
	require.True(t, s.Has("urn:a"))
	require.True(t, s.Contains(a))
	got, err := s.Get("urn:a")
	require.NoError(t, err)
	require.Same(t, a, got)

	s.Discard(a)
	require.False(t, s.Has("urn:a"))
	_, err = s.Get("urn:a")
	require.True(t, IsNotFound(err))

	// discarding an absent entity is a no-op
	s.Discard(a)
	require.Equal(t, 0, s.Len())
}

func TestSetOverwrite(t *testing.T) {
	s := NewSet[*Concept]()
	a1 := NewConcept("urn:a", "A")
	a2 := NewConcept("urn:a", "A2")
	s.Add(a1)
	s.Add(a2)
	require.Equal(t, 1, s.Len())
	got, err := s.Get("urn:a")
	require.NoError(t, err)
	require.Same(t, a2, got)
}

func TestSetDelete(t *testing.T) {
	s := NewSet(NewConcept("urn:a", "A"))
	require.NoError(t, s.Delete("urn:a"))

	err := s.Delete("urn:a")
	require.ErrorIs(t, err, ErrNotFound)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "urn:a", nf.URI)

	require.True(t, IsNotFound(s.Remove(NewConcept("urn:b", "B"))))
}

func TestSetPopAndOrder(t *testing.T) {
	s := NewSet(
		NewConcept("urn:c", "C"),
		NewConcept("urn:a", "A"),
		NewConcept("urn:b", "B"),
	)
	require.Equal(t, []string{"urn:a", "urn:b", "urn:c"}, s.Keys())

	v, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, "urn:a", v.URI())
	require.Equal(t, 2, s.Len())

	s.Clear()
	require.Equal(t, 0, s.Len())
	_, err = s.Pop()
	require.True(t, IsNotFound(err))
}

func TestSetUpdateFrom(t *testing.T) {
	a, b := NewConcept("urn:a", "A"), NewConcept("urn:b", "B")

	s, err := NewSetFrom[*Concept](map[string]*Concept{"x": a, "y": b})
	require.NoError(t, err)
	require.Equal(t, []string{"urn:a", "urn:b"}, s.Keys())

	s, err = NewSetFrom[*Concept]([]*Concept{a})
	require.NoError(t, err)
	require.Equal(t, []string{"urn:a"}, s.Keys())

	s2, err := NewSetFrom[*Concept](s)
	require.NoError(t, err)
	require.True(t, s.Equal(s2))

	_, err = NewSetFrom[*Concept](42)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestSetEqual(t *testing.T) {
	s1 := NewSet(NewConcept("urn:a", "A"))
	s2 := NewSet(NewConcept("urn:a", "A"))
	require.True(t, s1.Equal(s2))

	s2.Add(NewConcept("urn:a", "other label"))
	require.False(t, s1.Equal(s2))

	s2.Add(NewConcept("urn:a", "A"))
	s2.Add(NewConcept("urn:b", "B"))
	require.False(t, s1.Equal(s2))
}

func TestSetRangeStops(t *testing.T) {
	s := NewSet(NewConcept("urn:a", "A"), NewConcept("urn:b", "B"))
	var seen []string
	s.Range(func(c *Concept) bool {
		seen = append(seen, c.URI())
		return false
	})
	require.Equal(t, []string{"urn:a"}, seen)
}

func TestBroaderNarrower(t *testing.T) {
	a, b := NewConcept("urn:a", "A"), NewConcept("urn:b", "B")

	a.Broader.Add(b)
	require.True(t, b.Narrower.Has("urn:a"))
	require.Equal(t, 0, a.Narrower.Len())

	a.Broader.Discard(b)
	require.False(t, b.Narrower.Has("urn:a"))

	b.Narrower.Add(a)
	require.True(t, a.Broader.Has("urn:b"))

	a.Broader.Replace()
	require.False(t, b.Narrower.Has("urn:a"))
}

func TestSetReplaceKeepsSameInstance(t *testing.T) {
	a, b, c := NewConcept("urn:a", "A"), NewConcept("urn:b", "B"), NewConcept("urn:c", "C")
	a.Broader.Update(b, c)
	a.Broader.Replace(b)
	require.Equal(t, []string{"urn:b"}, a.Broader.Keys())
	require.True(t, b.Narrower.Has("urn:a"))
	require.False(t, c.Narrower.Has("urn:a"))
}

func TestMembership(t *testing.T) {
	a := NewConcept("urn:a", "A")
	col := NewCollection("urn:c1", "T")
	cs := NewConceptScheme("urn:s", "S")

	col.Members.Add(a)
	require.True(t, a.Collections.Has("urn:c1"))
	a.Collections.Discard(col)
	require.False(t, col.Members.Has("urn:a"))

	a.Schemes.Add(cs)
	require.True(t, cs.Concepts.Has("urn:a"))
	cs.Concepts.Clear()
	require.Equal(t, 0, a.Schemes.Len())
}
