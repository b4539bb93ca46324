// Package dc contains constants of the Dublin Core Metadata Element Set (legacy namespace).
package dc

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://purl.org/dc/elements/1.1/`
	Prefix = `dc:`
)

const (
	// A name given to the resource.
	Title = Prefix + `title`
	// An account of the resource.
	Description = Prefix + `description`
	// A point or period of time associated with an event in the lifecycle of the resource.
	Date = Prefix + `date`
)
