package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports lifecycle transitions and HTTP latencies. It
// implements port.TransitionObserver.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// NewRecorder registers the service collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "influence_hub",
			Name:      "transitions_total",
			Help:      "Committed status transitions by entity.",
		}, []string{"entity", "from", "to"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "influence_hub",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		r.transitions,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveTransition counts one committed transition. An empty from marks
// a newly created record.
func (r *Recorder) ObserveTransition(entity, from, to string) {
	if from == "" {
		from = "none"
	}
	r.transitions.WithLabelValues(entity, from, to).Inc()
}

// Middleware times requests by their chi route pattern.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
