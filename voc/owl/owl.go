// Package owl contains the OWL identity predicates used for concept matching.
//
// Two namespaces are in use in published vocabularies: the OWL 2 XML serialization
// namespace, which older SKOS exports emit, and the regular OWL namespace.
package owl

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
	voc.RegisterPrefix(XMLPrefix, XMLNS)
}

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`

	XMLNS     = `http://www.w3.org/2006/12/owl2-xml#`
	XMLPrefix = `owlxml:`
)

const (
	// The property that determines that two given individuals are equal.
	SameAs = Prefix + `sameAs`
	// Same as SameAs, in the OWL 2 XML namespace.
	XMLSameAs = XMLPrefix + `sameAs`
)
