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

// Package http serves a loaded taxonomy over a read-only JSON API.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cayleygraph/skos"
	"github.com/cayleygraph/skos/clog"
)

const defaultExportFormat = "nquads"

func jsonResponse(w http.ResponseWriter, code int, err interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error": `))
	data, _ := json.Marshal(fmt.Sprint(err))
	w.Write(data)
	w.Write([]byte(`}`))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		clog.Errorf("cannot write response: %v", err)
	}
}

// Entity is the JSON form of a concept, a scheme or a collection. Relations
// are listed by URI.
type Entity struct {
	URI  string `json:"uri"`
	Type string `json:"type"`

	PrefLabel  string `json:"prefLabel,omitempty"`
	Definition string `json:"definition,omitempty"`
	Notation   string `json:"notation,omitempty"`
	AltLabel   string `json:"altLabel,omitempty"`

	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`

	Broader     []string `json:"broader,omitempty"`
	Narrower    []string `json:"narrower,omitempty"`
	Related     []string `json:"related,omitempty"`
	Synonyms    []string `json:"synonyms,omitempty"`
	Collections []string `json:"collections,omitempty"`
	Schemes     []string `json:"schemes,omitempty"`
	Members     []string `json:"members,omitempty"`
}

// NewEntity converts o to its JSON form.
func NewEntity(o skos.Object) Entity {
	switch o := o.(type) {
	case *skos.Concept:
		return Entity{
			URI: o.URI(), Type: "Concept",
			PrefLabel:   o.PrefLabel,
			Definition:  o.Definition,
			Notation:    o.Notation,
			AltLabel:    o.AltLabel,
			Broader:     o.Broader.Keys(),
			Narrower:    o.Narrower.Keys(),
			Related:     o.Related.Keys(),
			Synonyms:    o.Synonyms.Keys(),
			Collections: o.Collections.Keys(),
			Schemes:     o.Schemes.Keys(),
		}
	case *skos.ConceptScheme:
		return Entity{
			URI: o.URI(), Type: "ConceptScheme",
			Title:       o.Title,
			Description: o.Description,
			Members:     o.Concepts.Keys(),
		}
	case *skos.Collection:
		e := Entity{
			URI: o.URI(), Type: "Collection",
			Title:       o.Title,
			Description: o.Description,
			Members:     o.Members.Keys(),
		}
		if !o.Date.IsZero() {
			d := o.Date
			e.Date = &d
		}
		return e
	}
	return Entity{URI: o.URI()}
}

// API serves the entities of one finished load. The loader is only read, so
// requests may run concurrently.
type API struct {
	loader *skos.Loader
	flat   bool
}

func NewAPI(l *skos.Loader) *API {
	return &API{loader: l, flat: l.Flat}
}

// view returns the view selected by the "flat" query parameter, defaulting to
// the loader's view at startup.
func (api *API) view(r *http.Request) (bool, error) {
	s := r.URL.Query().Get("flat")
	if s == "" {
		return api.flat, nil
	}
	return strconv.ParseBool(s)
}

func (api *API) ServeEntities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flat, err := api.view(r)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}
	out := make([]Entity, 0, api.loader.LenFor(flat))
	api.loader.RangeFor(flat, func(o skos.Object) bool {
		out = append(out, NewEntity(o))
		return true
	})
	writeJSON(w, out)
}

func (api *API) ServeEntity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flat, err := api.view(r)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		jsonResponse(w, http.StatusBadRequest, "missing uri parameter")
		return
	}
	o, err := api.loader.GetFor(uri, flat)
	if skos.IsNotFound(err) {
		jsonResponse(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		jsonResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, NewEntity(o))
}

func serveSet[T skos.Object](api *API, get func(flat bool) *skos.Set[T]) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		flat, err := api.view(r)
		if err != nil {
			jsonResponse(w, http.StatusBadRequest, err)
			return
		}
		set := get(flat)
		out := make([]Entity, 0, set.Len())
		set.Range(func(o T) bool {
			out = append(out, NewEntity(o))
			return true
		})
		writeJSON(w, out)
	}
}

// ServeExport writes the entities of a view, and everything they reference, in
// a quad format chosen by the "format" parameter.
func (api *API) ServeExport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	flat, err := api.view(r)
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, err)
		return
	}
	name := r.URL.Query().Get("format")
	if name == "" {
		name = defaultExportFormat
	}
	format := quad.FormatByName(name)
	if format == nil || format.Writer == nil {
		jsonResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", name))
		return
	}
	g, err := skos.NewBuilder().Build(api.loader.ValuesFor(flat), nil)
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, err)
		return
	}
	if len(format.Mime) > 0 {
		w.Header().Set("Content-Type", format.Mime[0])
	}
	qw := format.Writer(w)
	if _, err = qw.WriteQuads(g.Quads()); err != nil {
		clog.Errorf("export failed: %v", err)
	}
	if err = qw.Close(); err != nil {
		clog.Errorf("export failed: %v", err)
	}
}

func (api *API) APIv1(r *httprouter.Router) {
	r.GET("/api/v1/entities", CORS(LogRequest(api.ServeEntities)))
	r.GET("/api/v1/entity", CORS(LogRequest(api.ServeEntity)))
	r.GET("/api/v1/concepts", CORS(LogRequest(serveSet(api, api.loader.ConceptsFor))))
	r.GET("/api/v1/schemes", CORS(LogRequest(serveSet(api, api.loader.ConceptSchemesFor))))
	r.GET("/api/v1/collections", CORS(LogRequest(serveSet(api, api.loader.CollectionsFor))))
	r.GET("/api/v1/export", CORS(LogRequest(api.ServeExport)))
}

// NewRouter returns the routes of the API, health check and metrics.
func NewRouter(l *skos.Loader) *httprouter.Router {
	r := httprouter.New()
	r.OPTIONS("/*path", CORSFunc)
	NewAPI(l).APIv1(r)
	r.GET("/health", HandleHealth)
	r.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}
