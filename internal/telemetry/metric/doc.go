// Package metric provides Prometheus metrics for stockd.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, instrument vectors, HTTP handler
//   - collector.go: runtime collectors and the service info gauge
//
// Metrics include:
//
//   - Request counters, error counters, and latency histograms
//   - Request/response payload size histograms
//   - In-flight request gauge and fast-request SLO counters
//   - Per-product quantity gauges and order outcome counters
//   - Aggregate inventory gauges (items, quantity, out-of-stock, low-stock)
//
// All metrics share a configurable namespace and carry a constant
// service label. Metrics are exposed at /metrics in Prometheus format.
//
// @req RQ-0403
// @design DS-0402
package metric
