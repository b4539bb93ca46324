package cache

import (
	"errors"
	"fmt"
	"sort"
)

var ErrBackendNotRegistered = errors.New("cache: backend is not registered")

var registry = make(map[string]Registration)

// NewFunc opens a backend at addr, which is a path for persistent backends and a
// network address for remote ones.
type NewFunc func(addr string, opts Options) (Store, error)

type Registration struct {
	NewFunc      NewFunc
	IsPersistent bool
}

func Register(name string, r Registration) {
	if r.NewFunc == nil {
		panic("NewFunc must not be nil")
	}
	if _, found := registry[name]; found {
		panic(fmt.Sprintf("already registered cache backend %q", name))
	}
	registry[name] = r
}

// Open opens the named backend and instruments it with metrics.
func Open(name, addr string, opts Options) (Store, error) {
	r, registered := registry[name]
	if !registered {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotRegistered, name)
	}
	if r.IsPersistent && addr == "" {
		return nil, fmt.Errorf("cache: backend %q requires an address", name)
	}
	s, err := r.NewFunc(addr, opts)
	if err != nil {
		return nil, fmt.Errorf("cache: cannot open %q backend: %w", name, err)
	}
	return Instrument(name, s), nil
}

func IsRegistered(name string) bool {
	_, ok := registry[name]
	return ok
}

func IsPersistent(name string) bool {
	return registry[name].IsPersistent
}

func Backends() []string {
	t := make([]string, 0, len(registry))
	for n := range registry {
		t = append(t, n)
	}
	sort.Strings(t)
	return t
}
