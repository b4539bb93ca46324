package skos

import (
	"fmt"
	"time"
)

// Object is an entity of the SKOS model, identified by its URI.
type Object interface {
	URI() string
	Equal(o Object) bool
}

type object struct {
	uri string
}

// URI is the primary key of the entity. It never changes.
func (o object) URI() string { return o.uri }

// Concept is a taxonomy term.
//
// Broader and Narrower are inverse relations, and Related and Synonyms are
// symmetric: changing one side changes the partner too. Collections and Schemes
// mirror Collection.Members and ConceptScheme.Concepts.
type Concept struct {
	object

	PrefLabel  string
	Definition string
	Notation   string
	AltLabel   string

	Broader  *Set[*Concept]
	Narrower *Set[*Concept]
	Related  *Pair[*Concept]
	Synonyms *Pair[*Concept]

	Collections *Set[*Collection]
	Schemes     *Set[*ConceptScheme]
}

func NewConcept(uri, prefLabel string) *Concept {
	c := &Concept{object: object{uri: uri}, PrefLabel: prefLabel}
	c.Broader = newSet(
		func(b *Concept) { b.Narrower.put(c) },
		func(b *Concept) { b.Narrower.del(c.uri) },
	)
	c.Narrower = newSet(
		func(n *Concept) { n.Broader.put(c) },
		func(n *Concept) { n.Broader.del(c.uri) },
	)
	c.Related = newPair(c, func(o *Concept) *Pair[*Concept] { return o.Related })
	c.Synonyms = newPair(c, func(o *Concept) *Pair[*Concept] { return o.Synonyms })
	c.Collections = newSet(
		func(col *Collection) { col.Members.put(c) },
		func(col *Collection) { col.Members.del(c.uri) },
	)
	c.Schemes = newSet(
		func(s *ConceptScheme) { s.Concepts.put(c) },
		func(s *ConceptScheme) { s.Concepts.del(c.uri) },
	)
	return c
}

// Equal compares the URI and the scalar fields. Relations are not compared.
func (c *Concept) Equal(o Object) bool {
	other, ok := o.(*Concept)
	if !ok {
		return false
	} else if c == other {
		return true
	} else if c == nil || other == nil {
		return false
	}
	return c.uri == other.uri &&
		c.PrefLabel == other.PrefLabel &&
		c.Definition == other.Definition &&
		c.Notation == other.Notation &&
		c.AltLabel == other.AltLabel
}

func (c *Concept) String() string {
	return fmt.Sprintf("<Concept('%s')>", c.uri)
}

// ConceptScheme is a named vocabulary of concepts.
type ConceptScheme struct {
	object

	Title       string
	Description string

	Concepts *Set[*Concept]
}

func NewConceptScheme(uri, title string) *ConceptScheme {
	s := &ConceptScheme{object: object{uri: uri}, Title: title}
	s.Concepts = newSet(
		func(c *Concept) { c.Schemes.put(s) },
		func(c *Concept) { c.Schemes.del(s.uri) },
	)
	return s
}

// Equal compares the URI, the title, the description and the member concepts.
func (s *ConceptScheme) Equal(o Object) bool {
	other, ok := o.(*ConceptScheme)
	if !ok {
		return false
	} else if s == other {
		return true
	} else if s == nil || other == nil {
		return false
	}
	return s.uri == other.uri &&
		s.Title == other.Title &&
		s.Description == other.Description &&
		s.Concepts.Equal(other.Concepts)
}

func (s *ConceptScheme) String() string {
	return fmt.Sprintf("<ConceptScheme('%s')>", s.uri)
}

// Collection is a named grouping of concepts outside of any scheme.
type Collection struct {
	object

	Title       string
	Description string
	// Date is the zero time when the collection has no date.
	Date time.Time

	Members *Set[*Concept]
}

func NewCollection(uri, title string) *Collection {
	col := &Collection{object: object{uri: uri}, Title: title}
	col.Members = newSet(
		func(c *Concept) { c.Collections.put(col) },
		func(c *Concept) { c.Collections.del(col.uri) },
	)
	return col
}

// Equal compares the URI, the title, the description, the members and the date.
func (col *Collection) Equal(o Object) bool {
	other, ok := o.(*Collection)
	if !ok {
		return false
	} else if col == other {
		return true
	} else if col == nil || other == nil {
		return false
	}
	return col.uri == other.uri &&
		col.Title == other.Title &&
		col.Description == other.Description &&
		col.Date.Equal(other.Date) &&
		col.Members.Equal(other.Members)
}

func (col *Collection) String() string {
	return fmt.Sprintf("<Collection('%s')>", col.uri)
}
