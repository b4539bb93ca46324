package fetch

import (
	"context"
	"errors"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/skos/cache"
	"github.com/cayleygraph/skos/clog"
)

// CachedFetcher serves documents from a cache.Store and falls back to its
// source on a miss. Cache failures are logged and never fail a fetch.
type CachedFetcher struct {
	Source DocumentFetcher
	Store  cache.Store
}

func Cached(src DocumentFetcher, store cache.Store) *CachedFetcher {
	return &CachedFetcher{Source: src, Store: store}
}

func formatKey(uri string) string { return "f:" + uri }
func dataKey(uri string) string   { return "d:" + uri }

func (c *CachedFetcher) Fetch(ctx context.Context, uri string) (quad.ReadCloser, error) {
	return Decode(ctx, c, uri)
}

func (c *CachedFetcher) FetchDocument(ctx context.Context, uri string) (*Document, error) {
	doc, err := c.lookup(ctx, uri)
	if err == nil {
		if clog.V(2) {
			clog.Infof("cache hit for %s", uri)
		}
		return doc, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		clog.Warningf("cache lookup for %s failed: %v", uri, err)
	}

	doc, err = c.Source.FetchDocument(ctx, uri)
	if err != nil {
		return nil, err
	}
	// The format key is written last: its presence means the data is complete.
	err = c.Store.Put(ctx, dataKey(uri), doc.Data)
	if err == nil {
		err = c.Store.Put(ctx, formatKey(uri), []byte(doc.Format))
	}
	if err != nil {
		clog.Warningf("cannot cache %s: %v", uri, err)
	}
	return doc, nil
}

func (c *CachedFetcher) lookup(ctx context.Context, uri string) (*Document, error) {
	format, err := c.Store.Get(ctx, formatKey(uri))
	if err != nil {
		return nil, err
	}
	data, err := c.Store.Get(ctx, dataKey(uri))
	if err != nil {
		return nil, err
	}
	return &Document{URI: uri, Format: string(format), Data: data}, nil
}
