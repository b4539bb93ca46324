// Package rdfxml registers RDF/XML and Turtle quad readers.
//
// Most published SKOS vocabularies are served as RDF/XML or Turtle, neither of
// which the quad package can read on its own. Both readers are streaming and
// produce triples with an empty label.
package rdfxml

import (
	"bytes"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/knakk/rdf"
)

const (
	xsdString  = "http://www.w3.org/2001/XMLSchema#string"
	langString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name:   "rdfxml",
		Ext:    []string{".rdf", ".xml", ".owl"},
		Mime:   []string{"application/rdf+xml"},
		Reader: func(r io.Reader) quad.ReadCloser { return NewReader(r) },
	})
	quad.RegisterFormat(quad.Format{
		Name:   "turtle",
		Ext:    []string{".ttl"},
		Mime:   []string{"text/turtle", "application/x-turtle"},
		Reader: func(r io.Reader) quad.ReadCloser { return NewTurtleReader(r) },
	})
}

// Reader converts triples decoded by knakk/rdf into quads.
type Reader struct {
	src io.Reader // RDF/XML input, read on the first call
	dec rdf.TripleDecoder
	err error
}

var _ quad.ReadCloser = (*Reader)(nil)

// NewReader returns a reader for an RDF/XML document. Absolute IRIs of any
// scheme, such as urn:isbn:123, are accepted in rdf:about and rdf:resource.
// The document is read in full before the first quad is returned.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r}
}

// NewTurtleReader returns a reader for a Turtle document.
func NewTurtleReader(r io.Reader) *Reader {
	return &Reader{dec: rdf.NewTripleDecoder(r, rdf.Turtle)}
}

func (r *Reader) ReadQuad() (quad.Quad, error) {
	if r.err != nil {
		return quad.Quad{}, r.err
	}
	if r.dec == nil {
		data, err := io.ReadAll(r.src)
		if err != nil {
			r.err = err
			return quad.Quad{}, err
		}
		r.dec = rdf.NewTripleDecoder(bytes.NewReader(declareSchemes(data)), rdf.RDFXML)
	}
	t, err := r.dec.Decode()
	if err != nil {
		// the decoders are not restartable after an error
		r.err = err
		return quad.Quad{}, err
	}
	return quad.Quad{
		Subject:   Value(t.Subj),
		Predicate: Value(t.Pred),
		Object:    Value(t.Obj),
	}, nil
}

func (r *Reader) Close() error { return nil }

// Value converts an RDF term to a quad value. Plain and xsd:string literals
// become quad.String, language-tagged literals quad.LangString, and other typed
// literals quad.TypedString.
func Value(t rdf.Term) quad.Value {
	switch t := t.(type) {
	case rdf.IRI:
		return quad.IRI(t.String())
	case rdf.Blank:
		return quad.BNode(strings.TrimPrefix(t.String(), "_:"))
	case rdf.Literal:
		if lang := t.Lang(); lang != "" {
			return quad.LangString{Value: quad.String(t.String()), Lang: lang}
		}
		switch dt := t.DataType.String(); dt {
		case "", xsdString, langString:
			return quad.String(t.String())
		default:
			return quad.TypedString{Value: quad.String(t.String()), Type: quad.IRI(dt)}
		}
	case nil:
		return nil
	}
	return quad.String(t.String())
}
