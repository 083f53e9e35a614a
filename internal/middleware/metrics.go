package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cakebakery/backend/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request count, latency and in-flight requests.
// Requests are labelled by chi route pattern so path parameters do not explode cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.RequestInFlight.Inc()
		defer metrics.RequestInFlight.Dec()

		ww := newStatusRecorder(w)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := strconv.Itoa(ww.statusCode)

		metrics.RequestTotal.WithLabelValues(r.Method, route, status).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
	})
}
