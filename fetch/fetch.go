// Package fetch opens and decodes RDF documents from files and HTTP(S) URLs.
//
// It is the fetch-and-parse capability behind graph.Graph.Parse: a Fetcher
// retrieves a document, undoes gzip or bzip2 compression, detects its format and
// exposes it as a quad stream.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"

	"github.com/cayleygraph/skos/clog"
	_ "github.com/cayleygraph/skos/quad/rdfxml"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "cayleygraph-skos"
)

// Document is a fetched and decompressed RDF document.
type Document struct {
	URI string
	// Format is the name of a registered quad.Format.
	Format string
	Data   []byte
}

// Reader decodes the document with its format.
func (d *Document) Reader() (quad.ReadCloser, error) {
	f := quad.FormatByName(d.Format)
	if f == nil {
		return nil, fmt.Errorf("fetch: unknown quad format %q", d.Format)
	} else if f.Reader == nil {
		return nil, fmt.Errorf("fetch: decoding of %q is not supported", d.Format)
	}
	return f.Reader(bytes.NewReader(d.Data)), nil
}

// StatusError is returned for HTTP responses outside the 2xx range.
type StatusError struct {
	URI        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: could not get resource <%s>: %s", e.URI, e.Status)
}

// DocumentFetcher retrieves raw documents.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, uri string) (*Document, error)
}

// Decode fetches uri through src and returns its quads.
func Decode(ctx context.Context, src DocumentFetcher, uri string) (quad.ReadCloser, error) {
	doc, err := src.FetchDocument(ctx, uri)
	if err != nil {
		return nil, err
	}
	return doc.Reader()
}

// Fetcher reads documents from local files and HTTP(S) servers.
type Fetcher struct {
	// Client is used for HTTP requests. Its Timeout bounds every fetch.
	Client    *http.Client
	UserAgent string
	// Format forces a quad format by name. Empty means detect.
	Format string
}

// Default returns a fetcher with DefaultTimeout and DefaultUserAgent.
func Default() *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: DefaultTimeout},
		UserAgent: DefaultUserAgent,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, uri string) (quad.ReadCloser, error) {
	return Decode(ctx, f, uri)
}

func (f *Fetcher) FetchDocument(ctx context.Context, uri string) (*Document, error) {
	rc, ctype, err := f.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := Decompress(rc)
	if err != nil {
		return nil, fmt.Errorf("fetch: cannot decompress %s: %w", uri, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: cannot read %s: %w", uri, err)
	}
	doc := &Document{
		URI:    uri,
		Format: DetectFormat(f.Format, ctype, uri, data),
		Data:   data,
	}
	if clog.V(2) {
		clog.Infof("fetched %s (%s, %d bytes)", uri, doc.Format, len(data))
	}
	return doc, nil
}

func (f *Fetcher) open(ctx context.Context, uri string) (io.ReadCloser, string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "file" || u.Scheme == "" || len(u.Scheme) == 1 {
		p := uri
		if err == nil && u.Scheme == "file" {
			// Recovery heuristic for mistyping "file://path/to/file".
			p = filepath.Join(u.Host, u.Path)
		}
		fh, err := os.Open(p)
		if err != nil {
			return nil, "", fmt.Errorf("fetch: could not open file %q: %w", p, err)
		}
		return fh, "", nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("fetch: unsupported scheme %q in <%s>", u.Scheme, uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", AcceptHeader())
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	cli := f.Client
	if cli == nil {
		cli = http.DefaultClient
	}
	resp, err := cli.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: could not get resource <%s>: %w", uri, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, "", &StatusError{URI: uri, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// AcceptHeader lists the MIME types of every readable registered format.
func AcceptHeader() string {
	var types []string
	for _, f := range quad.Formats() {
		if f.Reader == nil {
			continue
		}
		types = append(types, f.Mime...)
	}
	sort.Strings(types)
	return strings.Join(append(types, "*/*;q=0.1"), ", ")
}

// DetectFormat picks a format name for a document. An explicit name wins, then
// the Content-Type, then the extension of the URI path, then the content itself.
func DetectFormat(name, contentType, uri string, data []byte) string {
	if name != "" {
		return name
	}
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			if f := quad.FormatByMime(mt); f != nil && f.Reader != nil {
				return f.Name
			}
		}
	}
	if f := formatByPath(uri); f != nil && f.Reader != nil {
		return f.Name
	}
	return Sniff(data)
}

func formatByPath(uri string) *quad.Format {
	p := uri
	if u, err := url.Parse(uri); err == nil && u.Path != "" {
		p = u.Path
	}
	p = strings.ToLower(p)
	for _, ext := range []string{".gz", ".bz2"} {
		p = strings.TrimSuffix(p, ext)
	}
	ext := path.Ext(p)
	if ext == "" {
		return nil
	}
	return quad.FormatByExt(ext)
}

// Sniff guesses a format from the first bytes of a document. N-Quads is the
// fallback.
func Sniff(data []byte) string {
	s := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	s = bytes.TrimLeft(s, " \t\r\n")
	if len(s) > 64 {
		s = s[:64]
	}
	switch {
	case bytes.HasPrefix(s, []byte("{")), bytes.HasPrefix(s, []byte("[")):
		return "jsonld"
	case bytes.HasPrefix(s, []byte("<?xml")), bytes.HasPrefix(s, []byte("<rdf:")),
		bytes.HasPrefix(s, []byte("<!--")), bytes.HasPrefix(s, []byte("<!DOCTYPE")):
		return "rdfxml"
	}
	lower := bytes.ToLower(s)
	for _, kw := range []string{"@prefix", "@base", "prefix ", "base "} {
		if bytes.HasPrefix(lower, []byte(kw)) {
			return "turtle"
		}
	}
	return "nquads"
}
