// Package redis is a document cache shared between processes through Redis.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cayleygraph/skos/cache"
)

const Type = "redis"

func init() {
	cache.Register(Type, cache.Registration{
		NewFunc:      Open,
		IsPersistent: true,
	})
}

// Open connects to the server at addr. Options: "password", "db", "prefix" and
// "ttl" (zero keeps entries forever).
func Open(addr string, opts cache.Options) (cache.Store, error) {
	password, err := opts.StringKey("password", "")
	if err != nil {
		return nil, err
	}
	db, err := opts.IntKey("db", 0)
	if err != nil {
		return nil, err
	}
	prefix, err := opts.StringKey("prefix", "skos:")
	if err != nil {
		return nil, err
	}
	ttl, err := opts.DurationKey("ttl", 0)
	if err != nil {
		return nil, err
	}
	return New(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), prefix, ttl), nil
}

func New(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrNotFound
	}
	return v, err
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
