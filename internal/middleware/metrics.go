package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the web tier.
type Metrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	mutations *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fyyur_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fyyur_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fyyur_mutations_total",
			Help: "Create, edit and delete outcomes by entity.",
		}, []string{"entity", "op", "result"}),
	}
}

type routeKey struct{}

type routeLabel struct {
	name string
}

// Instrument returns middleware counting and timing requests. It labels by the
// matched mux route template so path IDs do not explode cardinality. Mounted
// outside a router it relies on LabelRoute inside the router; requests that
// match no route are labelled "unmatched".
func (m *Metrics) Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			label := &routeLabel{}
			r = r.WithContext(context.WithValue(r.Context(), routeKey{}, label))
			next.ServeHTTP(rw, r)

			route := label.name
			if route == "" {
				route = routeTemplate(r)
			}
			if route == "" {
				route = "unmatched"
			}

			m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
			m.latency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// LabelRoute is router middleware reporting the matched route template to an
// enclosing Instrument.
func LabelRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if label, ok := r.Context().Value(routeKey{}).(*routeLabel); ok {
			label.name = routeTemplate(r)
		}
		next.ServeHTTP(w, r)
	})
}

func routeTemplate(r *http.Request) string {
	current := mux.CurrentRoute(r)
	if current == nil {
		return ""
	}
	tmpl, err := current.GetPathTemplate()
	if err != nil {
		return ""
	}
	return tmpl
}

// ObserveMutation records the outcome of a write against entity.
func (m *Metrics) ObserveMutation(entity, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations.WithLabelValues(entity, op, result).Inc()
}
