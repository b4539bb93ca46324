package cache

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skos_cache_hits",
		Help: "Number of document cache hits.",
	}, []string{"backend"})
	mMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skos_cache_misses",
		Help: "Number of document cache misses.",
	}, []string{"backend"})
	mPuts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skos_cache_puts",
		Help: "Number of values written to the document cache.",
	}, []string{"backend"})
	mErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skos_cache_errors",
		Help: "Number of failed document cache operations.",
	}, []string{"backend"})
)

// Instrument wraps s so that its operations are counted under the backend label.
func Instrument(backend string, s Store) Store {
	return &instrumented{
		Store:  s,
		hits:   mHits.WithLabelValues(backend),
		misses: mMisses.WithLabelValues(backend),
		puts:   mPuts.WithLabelValues(backend),
		errs:   mErrors.WithLabelValues(backend),
	}
}

type instrumented struct {
	Store
	hits, misses, puts, errs prometheus.Counter
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.Store.Get(ctx, key)
	switch {
	case err == nil:
		s.hits.Inc()
	case errors.Is(err, ErrNotFound):
		s.misses.Inc()
	default:
		s.errs.Inc()
	}
	return v, err
}

func (s *instrumented) Put(ctx context.Context, key string, value []byte) error {
	err := s.Store.Put(ctx, key, value)
	if err != nil {
		s.errs.Inc()
	} else {
		s.puts.Inc()
	}
	return err
}
