// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package memstore is an in-memory triple store implementing graph.Graph.
package memstore

import (
	"context"
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/fetch"
	"github.com/cayleygraph/skos/graph"
)

var _ graph.Graph = (*QuadStore)(nil)

// QuadDirectionIndex maps a node id to the ids of quads that have the node in a
// given direction. Quad ids in every list are ascending.
type QuadDirectionIndex struct {
	index [3]map[int64][]int64
}

func NewQuadDirectionIndex() QuadDirectionIndex {
	return QuadDirectionIndex{[...]map[int64][]int64{
		quad.Subject - 1:   make(map[int64][]int64),
		quad.Predicate - 1: make(map[int64][]int64),
		quad.Object - 1:    make(map[int64][]int64),
	}}
}

func (qdi QuadDirectionIndex) Add(d quad.Direction, id, qid int64) {
	if d < quad.Subject || d > quad.Object {
		panic("illegal direction")
	}
	qdi.index[d-1][id] = append(qdi.index[d-1][id], qid)
}

func (qdi QuadDirectionIndex) Get(d quad.Direction, id int64) []int64 {
	if d < quad.Subject || d > quad.Object {
		panic("illegal direction")
	}
	return qdi.index[d-1][id]
}

type triple [3]int64

// QuadStore keeps triples in an append-only log with per-direction indexes.
//
// A store created by Parse is a layer: it holds only the parsed triples, and every
// triple added to it is added to its parent as well.
type QuadStore struct {
	parent  *QuadStore
	fetcher graph.Fetcher

	nextID   int64
	idMap    map[string]int64
	revIDMap map[int64]quad.Value
	log      []quad.Quad
	seen     map[triple]struct{}
	index    QuadDirectionIndex
}

// Option configures a QuadStore.
type Option func(*QuadStore)

// WithFetcher sets the fetcher used by Parse. Stores without a fetcher use fetch.Default.
func WithFetcher(f graph.Fetcher) Option {
	return func(qs *QuadStore) { qs.fetcher = f }
}

// WithQuads preloads the store.
func WithQuads(quads ...quad.Quad) Option {
	return func(qs *QuadStore) {
		for _, q := range quads {
			qs.add(q)
		}
	}
}

func New(opts ...Option) *QuadStore {
	qs := newQuadStore()
	for _, o := range opts {
		o(qs)
	}
	return qs
}

func newQuadStore() *QuadStore {
	return &QuadStore{
		idMap:    make(map[string]int64),
		revIDMap: make(map[int64]quad.Value),

		// Sentinel null entry so indices start at 1
		log:    make([]quad.Quad, 1, 200),
		seen:   make(map[triple]struct{}),
		index:  NewQuadDirectionIndex(),
		nextID: 1,
	}
}

func (qs *QuadStore) idOf(v quad.Value) (int64, bool) {
	id, ok := qs.idMap[quad.StringOf(v)]
	return id, ok
}

func (qs *QuadStore) tripleOf(q quad.Quad) (triple, bool) {
	var t triple
	for d := quad.Subject; d <= quad.Object; d++ {
		id, ok := qs.idOf(q.Get(d))
		// If we've never heard about a node, it must not exist
		if !ok {
			return t, false
		}
		t[d-1] = id
	}
	return t, true
}

func (qs *QuadStore) AddQuad(q quad.Quad) error {
	if q.Subject == nil || q.Predicate == nil || q.Object == nil {
		return fmt.Errorf("memstore: invalid quad %v", q)
	}
	qs.add(q)
	return nil
}

func (qs *QuadStore) add(q quad.Quad) {
	for s := qs; s != nil; s = s.parent {
		s.addLocal(q)
	}
}

func (qs *QuadStore) addLocal(q quad.Quad) {
	if t, ok := qs.tripleOf(q); ok {
		if _, exists := qs.seen[t]; exists {
			return
		}
	}
	var t triple
	for dir := quad.Subject; dir <= quad.Object; dir++ {
		v := q.Get(dir)
		key := quad.StringOf(v)
		if _, ok := qs.idMap[key]; !ok {
			qs.idMap[key] = qs.nextID
			qs.revIDMap[qs.nextID] = v
			qs.nextID++
		}
		t[dir-1] = qs.idMap[key]
	}
	qid := int64(len(qs.log))
	q.Label = nil
	qs.log = append(qs.log, q)
	qs.seen[t] = struct{}{}
	for dir := quad.Subject; dir <= quad.Object; dir++ {
		qs.index.Add(dir, t[dir-1], qid)
	}
}

func (qs *QuadStore) Has(q quad.Quad) bool {
	t, ok := qs.tripleOf(q)
	if !ok {
		return false
	}
	_, ok = qs.seen[t]
	return ok
}

// intersect walks the shorter of two quad id lists and keeps the ids matching
// the other direction.
func (qs *QuadStore) intersect(d1 quad.Direction, v1 quad.Value, d2 quad.Direction, v2 quad.Value) []int64 {
	id1, ok := qs.idOf(v1)
	if !ok {
		return nil
	}
	id2, ok := qs.idOf(v2)
	if !ok {
		return nil
	}
	l1, l2 := qs.index.Get(d1, id1), qs.index.Get(d2, id2)
	if len(l2) < len(l1) {
		l1, d2, id2 = l2, d1, id1
	}
	var out []int64
	for _, qid := range l1 {
		if qs.idMap[quad.StringOf(qs.log[qid].Get(d2))] == id2 {
			out = append(out, qid)
		}
	}
	return out
}

func (qs *QuadStore) Subjects(pred, obj quad.Value) []quad.Value {
	var out []quad.Value
	seen := make(map[string]struct{})
	for _, qid := range qs.intersect(quad.Predicate, pred, quad.Object, obj) {
		s := qs.log[qid].Subject
		if _, ok := seen[quad.StringOf(s)]; ok {
			continue
		}
		seen[quad.StringOf(s)] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (qs *QuadStore) Objects(subj, pred quad.Value) []quad.Value {
	ids := qs.intersect(quad.Subject, subj, quad.Predicate, pred)
	out := make([]quad.Value, 0, len(ids))
	for _, qid := range ids {
		out = append(out, qs.log[qid].Object)
	}
	return out
}

func (qs *QuadStore) SubjectObjects(pred quad.Value) []graph.Edge {
	id, ok := qs.idOf(pred)
	if !ok {
		return nil
	}
	ids := qs.index.Get(quad.Predicate, id)
	out := make([]graph.Edge, 0, len(ids))
	for _, qid := range ids {
		q := qs.log[qid]
		out = append(out, graph.Edge{Subject: q.Subject, Object: q.Object})
	}
	return out
}

func (qs *QuadStore) Quads() []quad.Quad {
	out := make([]quad.Quad, len(qs.log)-1)
	copy(out, qs.log[1:])
	return out
}

func (qs *QuadStore) Size() int {
	return len(qs.log) - 1
}

// Parse fetches uri, merges it into the store and returns the new layer.
func (qs *QuadStore) Parse(ctx context.Context, uri string) (graph.Graph, error) {
	f := qs.fetcher
	if f == nil {
		f = fetch.Default()
	}
	r, err := f.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	layer := newQuadStore()
	layer.parent = qs
	layer.fetcher = qs.fetcher
	n, err := graph.ReadInto(layer, r)
	if err != nil {
		return nil, fmt.Errorf("memstore: failed to parse %s: %w", uri, err)
	}
	if clog.V(2) {
		clog.Infof("parsed %d quads from %s", n, uri)
	}
	return layer, nil
}
