package skos

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/skos/graph"
	"github.com/cayleygraph/skos/graph/memstore"
)

// Builder serializes entities back into triples.
//
// Entities reachable through a relation are emitted too. An entity is emitted
// once per Build call, detected by its type triple being in the graph already.
type Builder struct {
	g graph.Graph
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build adds the triples of objects to g and returns it. A nil g is replaced by
// a new in-memory graph.
func (b *Builder) Build(objects []Object, g graph.Graph) (graph.Graph, error) {
	if g == nil {
		g = memstore.New()
	}
	b.g = g
	defer func() { b.g = nil }()
	for _, o := range objects {
		if err := b.add(o); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// WriteTo builds objects into a new graph and writes its triples to w.
func (b *Builder) WriteTo(w quad.Writer, objects ...Object) error {
	g, err := b.Build(objects, nil)
	if err != nil {
		return err
	}
	_, err = w.WriteQuads(g.Quads())
	return err
}

func (b *Builder) add(o Object) error {
	switch o := o.(type) {
	case *Concept:
		return b.addConcept(o)
	case *Collection:
		return b.addCollection(o)
	case *ConceptScheme:
		return b.addConceptScheme(o)
	}
	return fmt.Errorf("skos: cannot build %T", o)
}

// typed adds the type triple of uri. It returns false if the entity was
// emitted before.
func (b *Builder) typed(uri string, typ quad.IRI) (bool, error) {
	q := quad.Quad{Subject: node(uri), Predicate: rdfType, Object: typ}
	if b.g.Has(q) {
		return false, nil
	}
	return true, b.g.AddQuad(q)
}

func (b *Builder) emit(s quad.Value, p quad.IRI, o quad.Value) error {
	return b.g.AddQuad(quad.Quad{Subject: s, Predicate: p, Object: o})
}

func (b *Builder) addConcept(c *Concept) error {
	ok, err := b.typed(c.URI(), typeConcept)
	if err != nil || !ok {
		return err
	}
	s := node(c.URI())
	if err = b.emit(s, prefLabel, quad.String(c.PrefLabel)); err != nil {
		return err
	}
	for _, f := range []struct {
		p quad.IRI
		v string
	}{
		{definition, c.Definition},
		{notation, c.Notation},
		{altLabel, c.AltLabel},
	} {
		if f.v == "" {
			continue
		}
		if err = b.emit(s, f.p, quad.String(f.v)); err != nil {
			return err
		}
	}

	// Symmetric relations are written from both endpoints, so a reloaded
	// pair holds its partners on both sides. Compare round trips with Keys
	// or Has, not Pair.Equal.
	for _, rel := range []struct {
		p   quad.IRI
		set []*Concept
	}{
		{exactMatch, c.Synonyms.Values()},
		{related, c.Related.Values()},
		{broader, c.Broader.Values()},
		{narrower, c.Narrower.Values()},
	} {
		for _, o := range rel.set {
			if err = b.emit(s, rel.p, node(o.URI())); err != nil {
				return err
			}
			if err = b.addConcept(o); err != nil {
				return err
			}
		}
	}
	for _, col := range c.Collections.Values() {
		if err = b.addCollection(col); err != nil {
			return err
		}
	}
	for _, cs := range c.Schemes.Values() {
		if err = b.addConceptScheme(cs); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) addCollection(col *Collection) error {
	ok, err := b.typed(col.URI(), typeCollection)
	if err != nil || !ok {
		return err
	}
	s := node(col.URI())
	if err = b.emit(s, dcTitle, quad.String(col.Title)); err != nil {
		return err
	}
	if col.Description != "" {
		if err = b.emit(s, dcDescription, quad.String(col.Description)); err != nil {
			return err
		}
	}
	if !col.Date.IsZero() {
		if err = b.emit(s, dcDate, quad.Time(col.Date.UTC())); err != nil {
			return err
		}
	}
	for _, c := range col.Members.Values() {
		if err = b.emit(s, member, node(c.URI())); err != nil {
			return err
		}
		if err = b.addConcept(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) addConceptScheme(cs *ConceptScheme) error {
	ok, err := b.typed(cs.URI(), typeConceptScheme)
	if err != nil || !ok {
		return err
	}
	s := node(cs.URI())
	if err = b.emit(s, dcTitle, quad.String(cs.Title)); err != nil {
		return err
	}
	if cs.Description != "" {
		if err = b.emit(s, dcDescription, quad.String(cs.Description)); err != nil {
			return err
		}
	}
	for _, c := range cs.Concepts.Values() {
		if err = b.emit(node(c.URI()), inScheme, s); err != nil {
			return err
		}
		if err = b.addConcept(c); err != nil {
			return err
		}
	}
	return nil
}
