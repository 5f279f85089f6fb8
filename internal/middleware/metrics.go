package middleware

import (
	"net/http"
	"strconv"
	"time"

	"studenthub/internal/cart"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of response time for handler",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInFlightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of HTTP requests being handled",
		},
	)

	httpErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP error responses (status 4xx and 5xx)",
		},
		[]string{"method", "path", "status"},
	)

	cartChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_changes_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"op"},
	)

	cartTotalAmount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cart_total_amount",
			Help:    "Cart total after each mutation, in smallest currency units",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		httpInFlightRequests,
		httpErrorsTotal,
		cartChangesTotal,
		cartTotalAmount,
	)
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlightRequests.Inc()
		defer httpInFlightRequests.Dec()
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rr, r)

		duration := time.Since(start).Seconds()
		path := routePath(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rr.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)

		if rr.status >= 400 {
			httpErrorsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rr.status)).Inc()
		}
	})
}

// routePath шаблон маршрута вместо реального пути, иначе каждый sessionID станет отдельной серией
func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}

	return "unmatched"
}

// CartMetricsHook считает изменения корзин каждой новой сессии
func CartMetricsHook(_ string, store *cart.Store) {
	store.Subscribe(func(change cart.Change) {
		cartChangesTotal.WithLabelValues(string(change.Op)).Inc()
		cartTotalAmount.Observe(float64(change.Summary.Total))
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}
