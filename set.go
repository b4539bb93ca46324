package skos

import (
	"fmt"
	"sort"
)

// Set is a mutable set of entities that is also a mapping from URI to entity.
// There is one entity per URI: adding an entity with a known URI replaces the
// previous one.
//
// Sets owned by an entity carry back-references, so that adding B to A.Broader
// also adds A to B.Narrower. Sets made with NewSet have none.
type Set[T Object] struct {
	m map[string]T

	onAdd     func(T)
	onDiscard func(T)
}

// Concepts is a set of concepts.
type Concepts = Set[*Concept]

func NewSet[T Object](values ...T) *Set[T] {
	s := &Set[T]{m: make(map[string]T, len(values))}
	s.Update(values...)
	return s
}

// NewSetFrom creates a set from another set, a map of URI to entity or a slice.
func NewSetFrom[T Object](source any) (*Set[T], error) {
	s := NewSet[T]()
	if err := s.UpdateFrom(source); err != nil {
		return nil, err
	}
	return s, nil
}

func newSet[T Object](onAdd, onDiscard func(T)) *Set[T] {
	return &Set[T]{m: make(map[string]T), onAdd: onAdd, onDiscard: onDiscard}
}

// put and del change the content without firing the back-references. They are
// how a partner set is updated from inside a hook.
func (s *Set[T]) put(v T) {
	if s.m == nil {
		s.m = make(map[string]T)
	}
	s.m[v.URI()] = v
}

func (s *Set[T]) del(uri string) {
	delete(s.m, uri)
}

func (s *Set[T]) Add(v T) {
	uri := v.URI()
	if old, ok := s.m[uri]; ok {
		if any(old) == any(v) {
			return
		}
		s.del(uri)
		if s.onDiscard != nil {
			s.onDiscard(old)
		}
	}
	s.put(v)
	if s.onAdd != nil {
		s.onAdd(v)
	}
}

// Discard removes the entity with the URI of v, if any.
func (s *Set[T]) Discard(v T) {
	s.discard(v.URI())
}

func (s *Set[T]) discard(uri string) bool {
	old, ok := s.m[uri]
	if !ok {
		return false
	}
	s.del(uri)
	if s.onDiscard != nil {
		s.onDiscard(old)
	}
	return true
}

// Remove is Discard that fails with a NotFoundError if v is absent.
func (s *Set[T]) Remove(v T) error {
	return s.Delete(v.URI())
}

// Delete removes the entity with the given URI or fails with a NotFoundError.
func (s *Set[T]) Delete(uri string) error {
	if !s.discard(uri) {
		return &NotFoundError{URI: uri}
	}
	return nil
}

func (s *Set[T]) Get(uri string) (T, error) {
	v, ok := s.m[uri]
	if !ok {
		return v, &NotFoundError{URI: uri}
	}
	return v, nil
}

// Pop removes and returns the entity with the lowest URI.
func (s *Set[T]) Pop() (T, error) {
	var zero T
	if len(s.m) == 0 {
		return zero, &NotFoundError{}
	}
	uri := s.Keys()[0]
	v := s.m[uri]
	s.discard(uri)
	return v, nil
}

func (s *Set[T]) Clear() {
	for _, uri := range s.Keys() {
		s.discard(uri)
	}
}

func (s *Set[T]) Update(values ...T) {
	for _, v := range values {
		s.Add(v)
	}
}

func (s *Set[T]) UpdateMap(m map[string]T) {
	for _, v := range m {
		s.Add(v)
	}
}

func (s *Set[T]) UpdateSet(o *Set[T]) {
	if o == nil || o == s {
		return
	}
	s.Update(o.Values()...)
}

// UpdateFrom adds every entity of a *Set[T], a map[string]T or a []T.
func (s *Set[T]) UpdateFrom(source any) error {
	switch src := source.(type) {
	case nil:
	case *Set[T]:
		s.UpdateSet(src)
	case *Pair[T]:
		s.Update(src.Values()...)
	case map[string]T:
		s.UpdateMap(src)
	case []T:
		s.Update(src...)
	default:
		return &ConfigurationError{Field: "source", Reason: fmt.Sprintf("cannot update a set from %T", source)}
	}
	return nil
}

// Replace makes values the new content. Entities that are dropped or added
// update their back-references.
func (s *Set[T]) Replace(values ...T) {
	keep := make(map[string]T, len(values))
	for _, v := range values {
		keep[v.URI()] = v
	}
	for _, uri := range s.Keys() {
		if v, ok := keep[uri]; !ok || any(v) != any(s.m[uri]) {
			s.discard(uri)
		}
	}
	s.Update(values...)
}

func (s *Set[T]) Has(uri string) bool {
	_, ok := s.m[uri]
	return ok
}

// Contains reports whether an entity with the URI of v is in the set.
func (s *Set[T]) Contains(v T) bool {
	return s.Has(v.URI())
}

func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Keys returns the URIs in ascending order.
func (s *Set[T]) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the entities ordered by URI.
func (s *Set[T]) Values() []T {
	out := make([]T, 0, len(s.m))
	for _, k := range s.Keys() {
		out = append(out, s.m[k])
	}
	return out
}

// Range calls fn for each entity in URI order until fn returns false. fn may
// modify the set.
func (s *Set[T]) Range(fn func(T) bool) {
	for _, v := range s.Values() {
		if !fn(v) {
			return
		}
	}
}

// Equal compares the URI to entity mappings using the entities' Equal.
func (s *Set[T]) Equal(o *Set[T]) bool {
	if s == o {
		return true
	} else if s == nil || o == nil {
		return s.Len() == o.Len()
	}
	if len(s.m) != len(o.m) {
		return false
	}
	for k, v := range s.m {
		ov, ok := o.m[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (s *Set[T]) String() string {
	return fmt.Sprint(s.Values())
}
