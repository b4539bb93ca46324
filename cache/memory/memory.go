// Package memory is a process-local LRU document cache.
package memory

import (
	"context"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/internal/lru"
)

const Type = "memory"

// DefaultSize is the number of entries kept when no size option is given.
const DefaultSize = 1024

func init() {
	cache.Register(Type, cache.Registration{
		NewFunc: func(_ string, opts cache.Options) (cache.Store, error) {
			size, err := opts.IntKey("size", DefaultSize)
			if err != nil {
				return nil, err
			}
			return New(size), nil
		},
	})
}

type Store struct {
	lru *lru.Cache[[]byte]
}

// New returns a cache holding at most size entries. Zero or less is unbounded.
func New(size int) *Store {
	return &Store{lru: lru.New[[]byte](size)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.lru.Get(key)
	if !ok {
		return nil, cache.ErrNotFound
	}
	return append([]byte{}, v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.lru.Put(key, append([]byte{}, value...))
	return nil
}

func (s *Store) Len() int { return s.lru.Len() }

func (s *Store) Close() error { return nil }
