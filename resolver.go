package skos

import (
	"context"
	"sort"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/graph"
)

var (
	mResolveFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skos_resolve_fetches",
		Help: "Number of external resources parsed during resolution.",
	})
	mResolveFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skos_resolve_fetch_errors",
		Help: "Number of external resources that failed to parse.",
	})
	mResolveFetchSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "skos_resolve_fetch_seconds",
		Help: "Time to fetch and parse one external resource.",
	})
	mResolveDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skos_resolve_depth",
		Help: "Deepest resolution level reached by the last load.",
	})
)

// resolver expands a graph with the resources it references. One resolver
// serves one load: resolved is shared by the whole recursion.
type resolver struct {
	maxDepth  int
	normalize Normalizer

	resolved map[string]struct{}
	// limited collects references left at the depth boundary.
	limited  map[string]struct{}
	deepest  int
}

func newResolver(maxDepth int, normalize Normalizer) *resolver {
	return &resolver{
		maxDepth:  maxDepth,
		normalize: normalize,
		resolved:  make(map[string]struct{}),
		limited:   make(map[string]struct{}),
	}
}

// Resolve parses every resource reachable from g through a resolvable predicate
// within the maximum depth. It returns a *RecursionLimitError when references
// were left at the boundary; any other error comes from the graph and aborts
// the load.
func (r *resolver) Resolve(ctx context.Context, g graph.Graph) error {
	if err := r.resolve(ctx, g, 0); err != nil {
		return err
	}
	mResolveDepth.Set(float64(r.deepest))
	if len(r.limited) == 0 {
		return nil
	}
	uris := make([]string, 0, len(r.limited))
	for uri := range r.limited {
		// a reference may be reached again below the boundary through another path
		if _, ok := r.resolved[uri]; !ok {
			uris = append(uris, uri)
		}
	}
	if len(uris) == 0 {
		return nil
	}
	sort.Strings(uris)
	return &RecursionLimitError{Depth: r.maxDepth, URIs: uris}
}

func (r *resolver) resolve(ctx context.Context, g graph.Graph, depth int) error {
	if depth > r.deepest {
		r.deepest = depth
	}
	for _, t := range entityTypes {
		for _, s := range g.Subjects(rdfType, t) {
			r.resolved[r.normalize(s)] = struct{}{}
		}
	}

	// normalized key -> identifier to fetch
	unresolved := make(map[string]string)
	for _, p := range resolvablePredicates {
		for _, e := range g.SubjectObjects(p) {
			// literals and blank nodes cannot be fetched
			o, ok := e.Object.(quad.IRI)
			if !ok {
				continue
			}
			key := r.normalize(o)
			if _, ok := r.resolved[key]; ok {
				continue
			}
			if _, ok := unresolved[key]; !ok {
				unresolved[key] = string(o)
			}
		}
	}
	if len(unresolved) == 0 {
		return nil
	}
	keys := make([]string, 0, len(unresolved))
	for k := range unresolved {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if r.maxDepth >= 0 && depth >= r.maxDepth {
		for _, k := range keys {
			r.limited[k] = struct{}{}
		}
		clog.Debugf("depth %d reached, %d references not followed", depth, len(keys))
		return nil
	}

	// Mark everything as resolved before fetching, so that resources referencing
	// each other are parsed once.
	for _, k := range keys {
		r.resolved[k] = struct{}{}
	}
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		uri := unresolved[k]
		clog.Infof("parsing %s", uri)
		start := time.Now()
		sub, err := g.Parse(ctx, uri)
		mResolveFetchSeconds.Observe(time.Since(start).Seconds())
		mResolveFetches.Inc()
		if err != nil {
			mResolveFetchErrors.Inc()
			return err
		}
		if err = r.resolve(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}
