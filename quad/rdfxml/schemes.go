package rdfxml

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

var (
	// attribute values of the form scheme:rest, without an authority
	schemeValue = regexp.MustCompile(`=\s*["']([A-Za-z][A-Za-z0-9.\-]*):(?:[^/"']|/[^/"'])`)
	nsDecl      = regexp.MustCompile(`xmlns:([A-Za-z_][\w.\-]*)\s*=`)
	firstElem   = regexp.MustCompile(`<[A-Za-z_][\w.\-:]*`)
)

// declareSchemes binds every IRI scheme used in an attribute value, and not
// declared as a prefix, to itself on the document element. The RDF/XML
// decoder reads "urn:a" as a QName, so with xmlns:urn="urn:" it expands back
// to the same IRI.
func declareSchemes(doc []byte) []byte {
	declared := make(map[string]bool)
	for _, m := range nsDecl.FindAllSubmatch(doc, -1) {
		declared[string(m[1])] = true
	}
	var decl bytes.Buffer
	for _, m := range schemeValue.FindAllSubmatch(doc, -1) {
		s := string(m[1])
		if declared[s] || strings.HasPrefix(strings.ToLower(s), "xml") {
			continue
		}
		declared[s] = true
		fmt.Fprintf(&decl, ` xmlns:%s="%s:"`, s, s)
	}
	if decl.Len() == 0 {
		return doc
	}
	loc := firstElem.FindIndex(doc)
	if loc == nil {
		return doc
	}
	out := make([]byte, 0, len(doc)+decl.Len())
	out = append(out, doc[:loc[1]]...)
	out = append(out, decl.Bytes()...)
	return append(out, doc[loc[1]:]...)
}
