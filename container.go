package skos

// Container is the capability persistence adapters use to read and write a
// relationship field, whether it is a plain Set or a Pair.
type Container[T Object] interface {
	Add(v T)
	Discard(v T)
	Replace(values ...T)
	Range(fn func(T) bool)
	Has(uri string) bool
	Get(uri string) (T, error)
	Len() int
}

var (
	_ Container[*Concept]       = (*Set[*Concept])(nil)
	_ Container[*Concept]       = (*Pair[*Concept])(nil)
	_ Container[*Collection]    = (*Set[*Collection])(nil)
	_ Container[*ConceptScheme] = (*Set[*ConceptScheme])(nil)
)
