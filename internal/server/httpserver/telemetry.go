package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/stockd/stockd/internal/telemetry/metric"
)

// fastRequestThresholds are the latency cutoffs for the fast-request
// counters. Each threshold is checked independently: a 30ms request
// counts under both, a 120ms request only under 200ms.
var fastRequestThresholds = []time.Duration{
	50 * time.Millisecond,
	200 * time.Millisecond,
}

// Telemetry instruments every request passing through it: an in-flight
// gauge held for the request lifetime, request and response sizes, a
// latency histogram, total and error counters, and fast-request counters.
//
// The in-flight gauge is balanced exactly once per request on every exit
// path. Panics are counted as exceptions and re-raised so the outer
// Recover middleware still produces the 500 response.
//
// @req RQ-0201
// @design DS-0201
func Telemetry(metrics *metric.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			route := routeTemplate(r)

			metrics.RequestsInFlight.WithLabelValues().Inc()
			counted := true
			release := func() {
				if counted {
					metrics.RequestsInFlight.WithLabelValues().Dec()
					counted = false
				}
			}

			// Go reports a missing body as ContentLength 0 and an
			// unknown length as -1; only declared lengths are observed.
			if r.ContentLength >= 0 {
				metrics.RequestSize.WithLabelValues(r.Method, route).Observe(float64(r.ContentLength))
			}

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			defer func() {
				if fault := recover(); fault != nil {
					metrics.ExceptionsTotal.WithLabelValues(route).Inc()
					release()
					panic(fault)
				}
				release()
			}()

			next.ServeHTTP(wrapped, r)

			// Completion observations. Skipped when the handler
			// panicked; the deferred teardown covers that path.
			elapsed := time.Since(start)
			status := strconv.Itoa(wrapped.statusCode)

			metrics.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route, status).Observe(elapsed.Seconds())
			metrics.ResponseSize.WithLabelValues(r.Method, route, status).Observe(float64(wrapped.bytesWritten))
			if wrapped.statusCode >= 400 {
				metrics.RequestErrors.WithLabelValues(r.Method, route, status).Inc()
			}
			for _, threshold := range fastRequestThresholds {
				if elapsed <= threshold {
					metrics.FastRequests.WithLabelValues(route, strconv.FormatInt(threshold.Milliseconds(), 10)).Inc()
				}
			}
		})
	}
}

// routeTemplate returns the matched mux pattern with the method prefix
// stripped, e.g. "/api/inventory/{id}". Using the template instead of
// the raw path keeps label cardinality bounded. Requests that never
// matched a pattern fall under "/".
func routeTemplate(r *http.Request) string {
	pattern := r.Pattern
	if pattern == "" {
		return "/"
	}
	if _, after, found := strings.Cut(pattern, " "); found {
		return after
	}
	return pattern
}
