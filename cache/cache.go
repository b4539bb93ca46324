// Package cache defines the document cache used to avoid refetching remote
// taxonomy resources, and a registry of its backends.
package cache

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

// Store is a byte-oriented key-value cache. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores the value for key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

type Options map[string]interface{}

var (
	typeInt      = reflect.TypeOf(int(0))
	typeDuration = reflect.TypeOf(time.Duration(0))
)

func (d Options) IntKey(key string, def int) (int, error) {
	if val, ok := d[key]; ok {
		if val != nil && reflect.TypeOf(val).ConvertibleTo(typeInt) {
			i := reflect.ValueOf(val).Convert(typeInt).Int()
			return int(i), nil
		}
		return def, fmt.Errorf("invalid %s parameter type from config: %T", key, val)
	}
	return def, nil
}

func (d Options) StringKey(key string, def string) (string, error) {
	if val, ok := d[key]; ok {
		if v, ok := val.(string); ok {
			return v, nil
		}
		return def, fmt.Errorf("invalid %s parameter type from config: %T", key, val)
	}
	return def, nil
}

// DurationKey accepts a time.Duration, an integer number of seconds or a string
// in time.ParseDuration format.
func (d Options) DurationKey(key string, def time.Duration) (time.Duration, error) {
	val, ok := d[key]
	if !ok {
		return def, nil
	}
	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case string:
		dur, err := time.ParseDuration(v)
		if err != nil {
			return def, fmt.Errorf("invalid %s parameter from config: %w", key, err)
		}
		return dur, nil
	}
	if val != nil && reflect.TypeOf(val).ConvertibleTo(typeInt) {
		return time.Duration(reflect.ValueOf(val).Convert(typeInt).Int()) * time.Second, nil
	}
	return def, fmt.Errorf("invalid %s parameter type from config: %T", key, val)
}
