// Package dcterms contains constants of the DCMI Metadata Terms vocabulary.
package dcterms

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://purl.org/dc/terms/`
	Prefix = `dcterms:`
)

const (
	Title       = Prefix + `title`
	Description = Prefix + `description`
	Date        = Prefix + `date`
)
