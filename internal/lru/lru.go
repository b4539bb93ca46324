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

package lru

import (
	"container/list"
	"sync"
)

// Cache implements an LRU cache keyed by string. A Cache with a size of zero or
// less never evicts.
type Cache[V any] struct {
	mu       sync.Mutex
	cache    map[string]*list.Element
	priority *list.List
	maxSize  int
}

type kv[V any] struct {
	key   string
	value V
}

func New[V any](size int) *Cache[V] {
	return &Cache[V]{
		maxSize:  size,
		priority: list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// Put stores value under key, replacing a previous value and marking it as most
// recently used.
func (lru *Cache[V]) Put(key string, value V) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if e, ok := lru.cache[key]; ok {
		e.Value = kv[V]{key: key, value: value}
		lru.priority.MoveToFront(e)
		return
	}
	if lru.maxSize > 0 && len(lru.cache) >= lru.maxSize {
		last := lru.priority.Remove(lru.priority.Back())
		delete(lru.cache, last.(kv[V]).key)
	}
	lru.cache[key] = lru.priority.PushFront(kv[V]{key: key, value: value})
}

func (lru *Cache[V]) Del(key string) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	e := lru.cache[key]
	if e == nil {
		return
	}
	delete(lru.cache, key)
	lru.priority.Remove(e)
}

func (lru *Cache[V]) Get(key string) (V, bool) {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	if element, ok := lru.cache[key]; ok {
		lru.priority.MoveToFront(element)
		return element.Value.(kv[V]).value, true
	}
	var zero V
	return zero, false
}

func (lru *Cache[V]) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return len(lru.cache)
}
