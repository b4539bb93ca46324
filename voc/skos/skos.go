// Package skos contains constants of the Simple Knowledge Organization System vocabulary.
package skos

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2004/02/skos/core#`
	Prefix = `skos:`
)

const (
	// Types

	// An idea or notion; a unit of thought.
	Concept = Prefix + `Concept`
	// A set of concepts, optionally including statements about semantic relationships between those concepts.
	ConceptScheme = Prefix + `ConceptScheme`
	// A meaningful collection of concepts.
	Collection = Prefix + `Collection`

	// Lexical labels

	// The preferred and emphasized lexical label for a resource, in a given language.
	PrefLabel = Prefix + `prefLabel`
	// An alternative lexical label for a resource.
	AltLabel = Prefix + `altLabel`

	// Documentation

	// A statement or formal explanation of the meaning of a concept.
	Definition = Prefix + `definition`
	// A string of characters used to uniquely identify a concept within the scope of a given concept scheme.
	Notation = Prefix + `notation`

	// Semantic relations

	// Relates a concept to a concept that is more general in meaning.
	Broader = Prefix + `broader`
	// Relates a concept to a concept that is more specific in meaning.
	Narrower = Prefix + `narrower`
	// Relates a concept to a concept with which there is an associative semantic relationship.
	Related = Prefix + `related`
	// Links two concepts, indicating a high degree of confidence that the concepts can be used interchangeably.
	ExactMatch = Prefix + `exactMatch`

	// Membership

	// Relates a collection to one of its members.
	Member = Prefix + `member`
	// Relates a resource (for example a concept) to a concept scheme in which it is included.
	InScheme = Prefix + `inScheme`
	// Relates, by convention, a concept scheme to a concept which is topmost in the broader/narrower hierarchies for that scheme.
	HasTopConcept = Prefix + `hasTopConcept`
	// Relates a concept to the concept scheme that it is a top level concept of.
	TopConceptOf = Prefix + `topConceptOf`
)
