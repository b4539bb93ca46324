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

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/graph/graphtest"
)

const (
	skosNS  = "http://www.w3.org/2004/02/skos/core#"
	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
)

func concept(uri, label string) []quad.Quad {
	return []quad.Quad{
		quad.MakeIRI(uri, rdfType, skosNS+"Concept", ""),
		quad.Make(quad.IRI(uri), quad.IRI(skosNS+"prefLabel"), label, nil),
	}
}

func newTestLoader(t *testing.T) *skos.Loader {
	var data []quad.Quad
	data = append(data, concept("urn:a", "A")...)
	data = append(data, concept("urn:b", "B")...)
	data = append(data,
		quad.MakeIRI("urn:a", skosNS+"related", "urn:b", ""),
		quad.MakeIRI("urn:a", skosNS+"broader", "http://ex/c", ""),
		quad.MakeIRI("urn:s", rdfType, skosNS+"ConceptScheme", ""),
		quad.Make(quad.IRI("urn:s"), quad.IRI("http://purl.org/dc/terms/title"), "S", nil),
		quad.MakeIRI("urn:a", skosNS+"inScheme", "urn:s", ""),
	)
	f := &graphtest.StaticFetcher{Docs: map[string][]quad.Quad{
		"http://ex/c": concept("http://ex/c", "C"),
	}}
	l, err := skos.Load(context.Background(), quad.NewReader(data), skos.Options{
		MaxDepth: 1, Normalize: skos.DefaultNormalizer, Fetcher: f,
	})
	require.NoError(t, err)
	return l
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEntities(t *testing.T, rec *httptest.ResponseRecorder) []Entity {
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []Entity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func uris(list []Entity) []string {
	var out []string
	for _, e := range list {
		out = append(out, e.URI)
	}
	return out
}

func TestEntities(t *testing.T) {
	h := NewRouter(newTestLoader(t))

	list := decodeEntities(t, get(t, h, "/api/v1/entities"))
	require.Equal(t, []string{"urn:a", "urn:b", "urn:s"}, uris(list))

	list = decodeEntities(t, get(t, h, "/api/v1/entities?flat=true"))
	require.Equal(t, []string{"http://ex/c", "urn:a", "urn:b", "urn:s"}, uris(list))

	rec := get(t, h, "/api/v1/entities?flat=maybe")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEntity(t *testing.T) {
	h := NewRouter(newTestLoader(t))

	rec := get(t, h, "/api/v1/entity?uri=urn:a")
	require.Equal(t, http.StatusOK, rec.Code)
	var e Entity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	require.Equal(t, "Concept", e.Type)
	require.Equal(t, "A", e.PrefLabel)
	require.Equal(t, []string{"urn:b"}, e.Related)
	require.Equal(t, []string{"http://ex/c"}, e.Broader)
	require.Equal(t, []string{"urn:s"}, e.Schemes)

	require.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/entity?uri=http://ex/c").Code)
	require.Equal(t, http.StatusOK, get(t, h, "/api/v1/entity?uri=http://ex/c&flat=1").Code)
	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/entity").Code)
}

func TestSets(t *testing.T) {
	h := NewRouter(newTestLoader(t))
	require.Equal(t, []string{"urn:a", "urn:b"}, uris(decodeEntities(t, get(t, h, "/api/v1/concepts"))))
	require.Len(t, decodeEntities(t, get(t, h, "/api/v1/concepts?flat=true")), 3)

	schemes := decodeEntities(t, get(t, h, "/api/v1/schemes"))
	require.Len(t, schemes, 1)
	require.Equal(t, "S", schemes[0].Title)
	require.Equal(t, []string{"urn:a"}, schemes[0].Members)

	require.Empty(t, decodeEntities(t, get(t, h, "/api/v1/collections")))
}

func TestExport(t *testing.T) {
	h := NewRouter(newTestLoader(t))
	rec := get(t, h, "/api/v1/export?format=nquads")
	require.Equal(t, http.StatusOK, rec.Code)

	quads, err := quad.ReadAll(nquads.NewReader(strings.NewReader(rec.Body.String()), false))
	require.NoError(t, err)
	require.Contains(t, quads, quad.MakeIRI("urn:a", skosNS+"related", "urn:b", ""))
	require.Contains(t, quads, quad.MakeIRI("urn:a", skosNS+"inScheme", "urn:s", ""))

	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/export?format=nope").Code)
}

func TestHealthAndCORS(t *testing.T) {
	h := NewRouter(newTestLoader(t))
	require.Equal(t, http.StatusNoContent, get(t, h, "/health").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/concepts", nil)
	req.Header.Set("Origin", "http://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://example.org", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "skos_http_request_seconds")
}
