package command

import (
	"context"
	"io"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/skos/clog"
	"github.com/cayleygraph/skos/graph"
)

func newLazyReader(open func() (quad.ReadCloser, error)) quad.ReadCloser {
	return &lazyReader{open: open}
}

type lazyReader struct {
	rc   quad.ReadCloser
	open func() (quad.ReadCloser, error)
}

func (r *lazyReader) ReadQuad() (quad.Quad, error) {
	if r.rc == nil {
		rc, err := r.open()
		if err != nil {
			return quad.Quad{}, err
		}
		r.rc = rc
	}
	return r.rc.ReadQuad()
}

func (r *lazyReader) Close() (err error) {
	if r.rc != nil {
		err = r.rc.Close()
	}
	return
}

type multiReader struct {
	rc []quad.ReadCloser
	i  int
}

func (r *multiReader) ReadQuad() (quad.Quad, error) {
	for {
		if r.i >= len(r.rc) {
			return quad.Quad{}, io.EOF
		}
		rc := r.rc[r.i]
		q, err := rc.ReadQuad()
		if err == io.EOF {
			rc.Close()
			r.i++
			continue
		}
		return q, err
	}
}

func (r *multiReader) Close() error {
	var first error
	if r.i < len(r.rc) {
		for _, rc := range r.rc[r.i:] {
			if err := rc.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// openAll reads the documents one after the other, opening each only when the
// previous one is exhausted.
func openAll(ctx context.Context, src graph.Fetcher, files []string) *multiReader {
	var multi multiReader
	for _, path := range files {
		path := path
		multi.rc = append(multi.rc, newLazyReader(func() (quad.ReadCloser, error) {
			clog.Infof("reading %q", path)
			return src.Fetch(ctx, path)
		}))
	}
	return &multi
}
