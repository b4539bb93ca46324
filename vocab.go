package skos

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/cayleygraph/skos/voc/dc"
	"github.com/cayleygraph/skos/voc/dcterms"
	"github.com/cayleygraph/skos/voc/owl"
	vskos "github.com/cayleygraph/skos/voc/skos"
)

func iri(s string) quad.IRI { return quad.IRI(s).Full() }

var (
	rdfType = iri(rdf.Type)

	typeConcept       = iri(vskos.Concept)
	typeConceptScheme = iri(vskos.ConceptScheme)
	typeCollection    = iri(vskos.Collection)

	prefLabel  = iri(vskos.PrefLabel)
	altLabel   = iri(vskos.AltLabel)
	definition = iri(vskos.Definition)
	notation   = iri(vskos.Notation)

	broader       = iri(vskos.Broader)
	narrower      = iri(vskos.Narrower)
	related       = iri(vskos.Related)
	exactMatch    = iri(vskos.ExactMatch)
	member        = iri(vskos.Member)
	inScheme      = iri(vskos.InScheme)
	topConceptOf  = iri(vskos.TopConceptOf)
	hasTopConcept = iri(vskos.HasTopConcept)

	sameAs    = iri(owl.SameAs)
	xmlSameAs = iri(owl.XMLSameAs)

	dcTitle       = iri(dc.Title)
	dcDescription = iri(dc.Description)
	dcDate        = iri(dc.Date)
)

// entityTypes are the types whose subjects count as already resolved.
var entityTypes = []quad.IRI{typeConcept, typeConceptScheme, typeCollection}

// resolvablePredicates are followed by the resolver.
var resolvablePredicates = []quad.IRI{broader, narrower, exactMatch, xmlSameAs, sameAs, related, member}

// Title, description and date are looked up in the current Dublin Core terms
// first, then in the legacy element set.
var (
	titlePredicates       = []quad.IRI{iri(dcterms.Title), dcTitle}
	descriptionPredicates = []quad.IRI{iri(dcterms.Description), dcDescription}
	datePredicates        = []quad.IRI{iri(dcterms.Date), dcDate}
)
