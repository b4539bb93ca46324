// Package graph defines the triple-level capability the SKOS loader and builder consume.
//
// Most of these are pretty straightforward. As long as a backing store can surface this
// interface, the loader, resolver and builder will work on top of it.
package graph

import (
	"context"
	"io"

	"github.com/cayleygraph/quad"
)

// Edge is a subject-object pair linked by a predicate.
type Edge struct {
	Subject quad.Value
	Object  quad.Value
}

// Graph is a set of triples with the lookups needed to extract SKOS entities.
//
// Result slices are free of duplicates and follow insertion order. Quad labels are
// ignored: two quads that differ only by label are the same triple.
type Graph interface {
	// Subjects returns every subject s such that (s, pred, obj) is in the graph.
	Subjects(pred, obj quad.Value) []quad.Value
	// SubjectObjects returns every (s, o) such that (s, pred, o) is in the graph.
	SubjectObjects(pred quad.Value) []Edge
	// Objects returns every object o such that (subj, pred, o) is in the graph.
	Objects(subj, pred quad.Value) []quad.Value
	// Has reports whether the triple of q is in the graph.
	Has(q quad.Quad) bool
	// AddQuad adds a triple. Adding an existing triple is a no-op.
	AddQuad(q quad.Quad) error

	// Parse fetches and parses the resource at uri and merges its triples into
	// the graph. It returns a new layer holding only the parsed triples; the layer
	// can be parsed into again, and its triples propagate to every parent graph.
	//
	// Parse blocks until the resource is read. Bounded latency is the job of the
	// underlying Fetcher and of ctx.
	Parse(ctx context.Context, uri string) (Graph, error)

	// Quads returns all triples in insertion order.
	Quads() []quad.Quad
	// Size returns the number of triples.
	Size() int
}

// Fetcher opens a quad stream for a resource identifier.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (quad.ReadCloser, error)
}

// FetcherFunc is an adapter to use ordinary functions as a Fetcher.
type FetcherFunc func(ctx context.Context, uri string) (quad.ReadCloser, error)

func (f FetcherFunc) Fetch(ctx context.Context, uri string) (quad.ReadCloser, error) {
	return f(ctx, uri)
}

// ReadInto copies all quads from r into g and returns the number of quads read.
func ReadInto(g Graph, r quad.Reader) (int, error) {
	n := 0
	for {
		q, err := r.ReadQuad()
		if err == io.EOF {
			return n, nil
		} else if err != nil {
			return n, err
		}
		if err = g.AddQuad(q); err != nil {
			return n, err
		}
		n++
	}
}

// NewWriter returns a quad.Writer adding quads to g.
func NewWriter(g Graph) quad.Writer {
	return &writer{g: g}
}

type writer struct {
	g Graph
}

func (w *writer) WriteQuad(q quad.Quad) error {
	return w.g.AddQuad(q)
}

func (w *writer) WriteQuads(buf []quad.Quad) (int, error) {
	for i, q := range buf {
		if err := w.g.AddQuad(q); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// NewReader returns a reader over a snapshot of all quads in g.
func NewReader(g Graph) quad.ReadCloser {
	return &reader{quads: g.Quads()}
}

type reader struct {
	quads []quad.Quad
	i     int
}

func (r *reader) ReadQuad() (quad.Quad, error) {
	if r.i >= len(r.quads) {
		return quad.Quad{}, io.EOF
	}
	q := r.quads[r.i]
	r.i++
	return q, nil
}

func (r *reader) Close() error { return nil }

// NopCloser wraps r with a no-op Close method.
func NopCloser(r quad.Reader) quad.ReadCloser {
	return nopCloser{r}
}

type nopCloser struct {
	quad.Reader
}

func (nopCloser) Close() error { return nil }
