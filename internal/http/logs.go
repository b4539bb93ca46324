package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cayleygraph/skos/clog"
)

var mRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "skos_http_request_seconds",
	Help: "Time to serve an API request.",
}, []string{"path", "code"})

// statusWriter wraps http.ResponseWriter and captures the written status code
type statusWriter struct {
	http.ResponseWriter
	code int
}

// WriteHeader wraps ResponseWriter WriteHeader and saves the code
func (w *statusWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
	w.code = code
}

// getAddress returns the address of the incoming request
func getAddress(req *http.Request) string {
	addr := req.Header.Get("X-Real-IP")
	if addr == "" {
		addr = req.Header.Get("X-Forwarded-For")
		if addr == "" {
			addr = req.RemoteAddr
		}
	}
	return addr
}

// LogRequest wraps a handler and emits logs and metrics about the request and the response
func LogRequest(handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		start := time.Now()
		addr := getAddress(req)
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		clog.Infof("started %s %s for %s", req.Method, req.URL.Path, addr)
		handler(sw, req, params)
		dt := time.Since(start)
		mRequests.WithLabelValues(req.URL.Path, strconv.Itoa(sw.code)).Observe(dt.Seconds())
		clog.Infof("completed %v %s %s in %v", sw.code, http.StatusText(sw.code), req.URL.Path, dt)
	}
}
