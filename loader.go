package skos

import (
	"context"
	"errors"
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/graph"
	"github.com/cayleygraph/skos/graph/memstore"
)

// Options control how a graph is loaded.
type Options struct {
	// MaxDepth is the number of hops of external resources to follow.
	// Zero follows nothing and a negative depth follows everything.
	MaxDepth int
	// Flat selects the flat view initially, see Loader.Flat.
	Flat bool
	// Normalize maps nodes to entity keys. Use DefaultNormalizer if unsure.
	Normalize Normalizer
	// Fetcher is used by Load to parse external resources. Nil uses the
	// default fetcher.
	Fetcher graph.Fetcher
}

// DefaultOptions loads without following references.
func DefaultOptions() Options {
	return Options{Normalize: DefaultNormalizer}
}

// Loader is a read-only mapping from URI to the entities of a loaded graph.
//
// It holds two views. The root view has the entities typed in the graph given
// to NewLoader; the flat view adds every entity found while resolving external
// references. Flat selects the view used by the accessors without a flat
// argument. The flat view is a superset of the root view.
type Loader struct {
	Flat bool

	normalize Normalizer
	limit     *RecursionLimitError

	concepts    map[string]*Concept
	schemes     map[string]*ConceptScheme
	collections map[string]*Collection

	// roots are the keys typed in the original graph.
	rootConcepts    map[string]struct{}
	rootSchemes     map[string]struct{}
	rootCollections map[string]struct{}

	cache     map[string]Object
	flatCache map[string]Object
}

// Load reads all quads from r into a new in-memory graph and loads it.
func Load(ctx context.Context, r quad.Reader, opts Options) (*Loader, error) {
	var mopts []memstore.Option
	if opts.Fetcher != nil {
		mopts = append(mopts, memstore.WithFetcher(opts.Fetcher))
	}
	g := memstore.New(mopts...)
	if _, err := graph.ReadInto(g, r); err != nil {
		return nil, err
	}
	return NewLoader(ctx, g, opts)
}

// NewLoader resolves the references of g, adding the parsed resources to it,
// and extracts all entities.
func NewLoader(ctx context.Context, g graph.Graph, opts Options) (*Loader, error) {
	if g == nil {
		return nil, &ConfigurationError{Field: "graph", Reason: "graph is nil"}
	}
	if opts.Normalize == nil {
		return nil, &ConfigurationError{Field: "normalizer", Reason: "normalizer is nil"}
	}
	l := &Loader{
		Flat:      opts.Flat,
		normalize: opts.Normalize,

		concepts:    make(map[string]*Concept),
		schemes:     make(map[string]*ConceptScheme),
		collections: make(map[string]*Collection),
	}
	if err := l.load(ctx, g, opts.MaxDepth); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Loader) subjectsOf(g graph.Graph, typ quad.IRI) map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range g.Subjects(rdfType, typ) {
		out[l.normalize(s)] = struct{}{}
	}
	return out
}

func (l *Loader) load(ctx context.Context, g graph.Graph, maxDepth int) error {
	// Roots come from the graph as given, before resolution grows it.
	l.rootConcepts = l.subjectsOf(g, typeConcept)
	l.rootCollections = l.subjectsOf(g, typeCollection)
	l.rootSchemes = l.subjectsOf(g, typeConceptScheme)

	err := newResolver(maxDepth, l.normalize).Resolve(ctx, g)
	var limit *RecursionLimitError
	if errors.As(err, &limit) {
		clog.Infof("%v", limit)
		l.limit = limit
	} else if err != nil {
		return err
	}

	if err = l.loadConcepts(g); err != nil {
		return err
	}
	if err = l.loadCollections(g); err != nil {
		return err
	}
	if err = l.loadConceptSchemes(g); err != nil {
		return err
	}

	l.flatCache = make(map[string]Object, len(l.concepts)+len(l.collections)+len(l.schemes))
	for k, v := range l.concepts {
		l.flatCache[k] = v
	}
	for k, v := range l.schemes {
		l.flatCache[k] = v
	}
	for k, v := range l.collections {
		l.flatCache[k] = v
	}
	l.cache = make(map[string]Object)
	for _, roots := range []map[string]struct{}{l.rootConcepts, l.rootSchemes, l.rootCollections} {
		for k := range roots {
			if v, ok := l.flatCache[k]; ok {
				l.cache[k] = v
			}
		}
	}
	return nil
}

// first returns the first non-empty value of subject for the predicates, tried
// in order.
func first(g graph.Graph, subject quad.Value, preds ...quad.IRI) quad.Value {
	for _, p := range preds {
		for _, v := range g.Objects(subject, p) {
			if literal(v) != "" {
				return v
			}
		}
	}
	return nil
}

func firstString(g graph.Graph, subject quad.Value, preds ...quad.IRI) string {
	return literal(first(g, subject, preds...))
}

// conceptRelations maps each resolvable predicate between concepts to the
// field it fills.
var conceptRelations = []struct {
	pred  quad.IRI
	field func(c *Concept) Container[*Concept]
}{
	{narrower, func(c *Concept) Container[*Concept] { return c.Narrower }},
	{broader, func(c *Concept) Container[*Concept] { return c.Broader }},
	{related, func(c *Concept) Container[*Concept] { return c.Related }},
	{exactMatch, func(c *Concept) Container[*Concept] { return c.Synonyms }},
	{xmlSameAs, func(c *Concept) Container[*Concept] { return c.Synonyms }},
	{sameAs, func(c *Concept) Container[*Concept] { return c.Synonyms }},
}

func (l *Loader) loadConcepts(g graph.Graph) error {
	for _, s := range g.Subjects(rdfType, typeConcept) {
		uri := l.normalize(s)
		if _, ok := l.concepts[uri]; ok {
			continue
		}
		label := firstString(g, s, prefLabel)
		if label == "" {
			return &MissingFieldError{Type: "Concept", URI: uri, Field: "prefLabel"}
		}
		c := NewConcept(uri, label)
		c.Definition = firstString(g, s, definition)
		c.Notation = firstString(g, s, notation)
		c.AltLabel = firstString(g, s, altLabel)
		clog.Debugf("creating %v", c)
		l.concepts[uri] = c
	}

	for _, rel := range conceptRelations {
		for _, e := range g.SubjectObjects(rel.pred) {
			s, ok := l.concepts[l.normalize(e.Subject)]
			if !ok {
				continue
			}
			o, ok := l.concepts[l.normalize(e.Object)]
			if !ok {
				// never extracted: out of reach or not a concept
				continue
			}
			clog.Debugf("adding %v to %v as %s", o, s, rel.pred)
			rel.field(s).Add(o)
		}
	}
	return nil
}

func (l *Loader) loadCollections(g graph.Graph) error {
	for _, s := range g.Subjects(rdfType, typeCollection) {
		uri := l.normalize(s)
		if _, ok := l.collections[uri]; ok {
			continue
		}
		title := firstString(g, s, titlePredicates...)
		if title == "" {
			return &MissingFieldError{Type: "Collection", URI: uri, Field: "title"}
		}
		col := NewCollection(uri, title)
		col.Description = firstString(g, s, descriptionPredicates...)
		if v := first(g, s, datePredicates...); v != nil {
			date, err := parseDate(v)
			if err != nil {
				clog.Warningf("ignoring date %q of %v: %v", literal(v), col, err)
			} else {
				col.Date = date
			}
		}
		clog.Debugf("creating %v", col)
		l.collections[uri] = col
	}

	for _, e := range g.SubjectObjects(member) {
		col, ok := l.collections[l.normalize(e.Subject)]
		if !ok {
			continue
		}
		c, ok := l.concepts[l.normalize(e.Object)]
		if !ok {
			continue
		}
		clog.Debugf("adding %v to %v as a member", c, col)
		col.Members.Add(c)
	}
	return nil
}

func (l *Loader) loadConceptSchemes(g graph.Graph) error {
	for _, s := range g.Subjects(rdfType, typeConceptScheme) {
		uri := l.normalize(s)
		if _, ok := l.schemes[uri]; ok {
			continue
		}
		title := firstString(g, s, titlePredicates...)
		if title == "" {
			return &MissingFieldError{Type: "ConceptScheme", URI: uri, Field: "title"}
		}
		cs := NewConceptScheme(uri, title)
		cs.Description = firstString(g, s, descriptionPredicates...)
		clog.Debugf("creating %v", cs)
		l.schemes[uri] = cs
	}

	wire := func(conceptNode, schemeNode quad.Value) {
		c, ok := l.concepts[l.normalize(conceptNode)]
		if !ok {
			return
		}
		cs, ok := l.schemes[l.normalize(schemeNode)]
		if !ok {
			return
		}
		cs.Concepts.Add(c)
	}
	for _, p := range []quad.IRI{inScheme, topConceptOf} {
		for _, e := range g.SubjectObjects(p) {
			wire(e.Subject, e.Object)
		}
	}
	for _, e := range g.SubjectObjects(hasTopConcept) {
		wire(e.Object, e.Subject)
	}
	return nil
}

// RecursionLimit returns the references that were not followed because of the
// maximum depth, or nil.
func (l *Loader) RecursionLimit() *RecursionLimitError {
	return l.limit
}

func (l *Loader) view(flat bool) map[string]Object {
	if flat {
		return l.flatCache
	}
	return l.cache
}

// Get returns the entity for uri in the current view.
func (l *Loader) Get(uri string) (Object, error) {
	return l.GetFor(uri, l.Flat)
}

func (l *Loader) GetFor(uri string, flat bool) (Object, error) {
	v, ok := l.view(flat)[uri]
	if !ok {
		return nil, &NotFoundError{URI: uri}
	}
	return v, nil
}

func (l *Loader) Has(uri string) bool { return l.HasFor(uri, l.Flat) }

func (l *Loader) HasFor(uri string, flat bool) bool {
	_, ok := l.view(flat)[uri]
	return ok
}

func (l *Loader) Len() int { return l.LenFor(l.Flat) }

func (l *Loader) LenFor(flat bool) int { return len(l.view(flat)) }

// Keys returns the URIs of the current view in ascending order.
func (l *Loader) Keys() []string { return l.KeysFor(l.Flat) }

func (l *Loader) KeysFor(flat bool) []string {
	m := l.view(flat)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the entities of the current view ordered by URI.
func (l *Loader) Values() []Object { return l.ValuesFor(l.Flat) }

func (l *Loader) ValuesFor(flat bool) []Object {
	m := l.view(flat)
	out := make([]Object, 0, len(m))
	for _, k := range l.KeysFor(flat) {
		out = append(out, m[k])
	}
	return out
}

func (l *Loader) Range(fn func(Object) bool) { l.RangeFor(l.Flat, fn) }

func (l *Loader) RangeFor(flat bool, fn func(Object) bool) {
	for _, v := range l.ValuesFor(flat) {
		if !fn(v) {
			return
		}
	}
}

// Concepts returns a new set with the concepts of the current view. Later
// changes to the set do not affect the loader.
func (l *Loader) Concepts() *Set[*Concept] { return l.ConceptsFor(l.Flat) }

func (l *Loader) ConceptsFor(flat bool) *Set[*Concept] {
	return snapshot(l.concepts, l.rootConcepts, flat)
}

func (l *Loader) ConceptSchemes() *Set[*ConceptScheme] { return l.ConceptSchemesFor(l.Flat) }

func (l *Loader) ConceptSchemesFor(flat bool) *Set[*ConceptScheme] {
	return snapshot(l.schemes, l.rootSchemes, flat)
}

func (l *Loader) Collections() *Set[*Collection] { return l.CollectionsFor(l.Flat) }

func (l *Loader) CollectionsFor(flat bool) *Set[*Collection] {
	return snapshot(l.collections, l.rootCollections, flat)
}

func snapshot[T Object](all map[string]T, roots map[string]struct{}, flat bool) *Set[T] {
	s := NewSet[T]()
	if flat {
		s.UpdateMap(all)
		return s
	}
	for k := range roots {
		if v, ok := all[k]; ok {
			s.Add(v)
		}
	}
	return s
}
