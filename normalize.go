package skos

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
)

// Normalizer maps a node of the source graph to the key used for entity
// identity. Two nodes with the same key load as one entity.
type Normalizer func(v quad.Value) string

// DefaultNormalizer returns IRIs as is and blank nodes as "_:id". Literals use
// their native string form.
func DefaultNormalizer(v quad.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case quad.IRI:
		return string(v)
	case quad.BNode:
		return v.String()
	}
	return literal(v)
}

// TrimSlash is DefaultNormalizer with trailing slashes removed, so that
// "http://example.org/a/" and "http://example.org/a" are one entity.
func TrimSlash(v quad.Value) string {
	return strings.TrimRight(DefaultNormalizer(v), "/")
}

var normalizers = map[string]Normalizer{
	"default":    DefaultNormalizer,
	"trim-slash": TrimSlash,
}

// RegisterNormalizer makes a normalizer available by name to NormalizerByName.
func RegisterNormalizer(name string, n Normalizer) {
	if n == nil {
		panic("nil normalizer")
	}
	if _, ok := normalizers[name]; ok {
		panic(fmt.Sprintf("normalizer %q is already registered", name))
	}
	normalizers[name] = n
}

// NormalizerByName returns a registered normalizer. An empty name selects the
// default one.
func NormalizerByName(name string) (Normalizer, error) {
	if name == "" {
		return DefaultNormalizer, nil
	}
	n, ok := normalizers[name]
	if !ok {
		return nil, &ConfigurationError{
			Field:  "normalizer",
			Reason: fmt.Sprintf("unknown normalizer %q, expected one of %s", name, strings.Join(Normalizers(), ", ")),
		}
	}
	return n, nil
}

func Normalizers() []string {
	names := make([]string, 0, len(normalizers))
	for n := range normalizers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// node is the inverse of the normalizer used when building graphs.
func node(uri string) quad.Value {
	if strings.HasPrefix(uri, "_:") {
		return quad.BNode(uri[2:])
	}
	return quad.IRI(uri)
}
