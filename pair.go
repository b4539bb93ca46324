package skos

import (
	"fmt"
	"sort"
)

// Pair is one undirected relation between entities, stored as two sets.
//
// Left holds the edges added on this side and right the edges added from the
// partner's side. Reads see the union of both, Add only ever writes left, and
// the partner's right side is written by the back-reference. This is the shape
// a persistence layer needs to store a self-referential relation as two rows.
type Pair[T Object] struct {
	left, right *Set[T]
}

// NewPair returns a pair without back-references.
func NewPair[T Object]() *Pair[T] {
	return &Pair[T]{left: NewSet[T](), right: NewSet[T]()}
}

// newPair wires a pair owned by owner. partner returns the pair of the same
// relation on another entity.
func newPair[T Object](owner T, partner func(T) *Pair[T]) *Pair[T] {
	return &Pair[T]{
		left: newSet(
			func(v T) { partner(v).right.put(owner) },
			func(v T) { partner(v).right.del(owner.URI()) },
		),
		right: newSet(
			func(v T) { partner(v).left.put(owner) },
			func(v T) { partner(v).left.del(owner.URI()) },
		),
	}
}

// Left returns the side written by Add.
func (p *Pair[T]) Left() *Set[T] { return p.left }

// Right returns the side written by partners.
func (p *Pair[T]) Right() *Set[T] { return p.right }

func (p *Pair[T]) Add(v T) {
	p.left.Add(v)
}

// Discard removes v from both sides.
func (p *Pair[T]) Discard(v T) {
	p.left.Discard(v)
	p.right.Discard(v)
}

// Delete removes uri from both sides. It fails only if uri is on neither side.
func (p *Pair[T]) Delete(uri string) error {
	l := p.left.discard(uri)
	r := p.right.discard(uri)
	if !l && !r {
		return &NotFoundError{URI: uri}
	}
	return nil
}

func (p *Pair[T]) Remove(v T) error {
	return p.Delete(v.URI())
}

func (p *Pair[T]) Get(uri string) (T, error) {
	if v, err := p.left.Get(uri); err == nil {
		return v, nil
	}
	return p.right.Get(uri)
}

// Pop removes and returns the entity with the lowest URI.
func (p *Pair[T]) Pop() (T, error) {
	keys := p.Keys()
	if len(keys) == 0 {
		var zero T
		return zero, &NotFoundError{}
	}
	v, _ := p.Get(keys[0])
	p.Delete(keys[0])
	return v, nil
}

func (p *Pair[T]) Clear() {
	p.left.Clear()
	p.right.Clear()
}

func (p *Pair[T]) Update(values ...T) {
	p.left.Update(values...)
}

// Replace makes values the new left side and empties the right side. Partners
// re-derive their own sides from the back-references.
func (p *Pair[T]) Replace(values ...T) {
	p.left.Replace(values...)
	p.right.Clear()
}

func (p *Pair[T]) Has(uri string) bool {
	return p.left.Has(uri) || p.right.Has(uri)
}

func (p *Pair[T]) Contains(v T) bool {
	return p.Has(v.URI())
}

// Len counts entities present on either side once.
func (p *Pair[T]) Len() int {
	n := p.left.Len()
	for k := range p.right.m {
		if !p.left.Has(k) {
			n++
		}
	}
	return n
}

// Keys returns the URIs of both sides, without duplicates, in ascending order.
func (p *Pair[T]) Keys() []string {
	keys := p.left.Keys()
	for k := range p.right.m {
		if !p.left.Has(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Values returns the entities of both sides ordered by URI. An entity on both
// sides is taken from the left.
func (p *Pair[T]) Values() []T {
	keys := p.Keys()
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		v, _ := p.Get(k)
		out = append(out, v)
	}
	return out
}

func (p *Pair[T]) Range(fn func(T) bool) {
	for _, v := range p.Values() {
		if !fn(v) {
			return
		}
	}
}

// Equal compares left to left and right to right.
func (p *Pair[T]) Equal(o *Pair[T]) bool {
	if p == o {
		return true
	} else if p == nil || o == nil {
		return false
	}
	return p.left.Equal(o.left) && p.right.Equal(o.right)
}

func (p *Pair[T]) String() string {
	return fmt.Sprint(p.Values())
}
