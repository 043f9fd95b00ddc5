package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default values used when Config fields are left empty.
const (
	DefaultNamespace = "stockd"
	DefaultService   = "stockd"
)

// sizeBuckets covers JSON payloads from tiny status bodies up to full
// inventory listings (bytes).
var sizeBuckets = []float64{200, 500, 1_000, 5_000, 10_000, 50_000, 100_000, 500_000, 1_000_000}

// Config configures the metrics registry.
//
// @design DS-0402
type Config struct {
	// Namespace is the prefix applied to every metric name.
	Namespace string

	// Service is the value of the constant "service" label attached
	// to every metric.
	Service string

	// Version is reported by the service info gauge.
	Version string
}

// Registry owns a dedicated Prometheus registry and every instrument the
// service records into. The constant "service" label is curried into each
// vector at construction, so callers only supply the variable labels.
//
// @req RQ-0403
// @design DS-0402
type Registry struct {
	cfg      Config
	registry *prometheus.Registry

	// HTTP request metrics.
	RequestsTotal    *prometheus.CounterVec // method, route, status_code
	RequestErrors    *prometheus.CounterVec // method, route, status_code
	RequestDuration  prometheus.ObserverVec // method, route, status_code
	RequestsInFlight *prometheus.GaugeVec   // (service only)
	RequestSize      prometheus.ObserverVec // method, route
	ResponseSize     prometheus.ObserverVec // method, route, status_code
	ExceptionsTotal  *prometheus.CounterVec // route
	FastRequests     *prometheus.CounterVec // route, le_ms

	// Inventory metrics.
	ProductQuantity *prometheus.GaugeVec   // product_id
	OrdersTotal     *prometheus.CounterVec // product_id, result
	StockDecrements *prometheus.CounterVec // product_id
	TotalItems      *prometheus.GaugeVec   // (service only)
	TotalQuantity   *prometheus.GaugeVec   // (service only)
	OutOfStockItems *prometheus.GaugeVec   // (service only)
	LowStockItems   *prometheus.GaugeVec   // (service only)
}

// New creates a metrics registry with all instruments registered.
//
// @design DS-0402
func New(cfg Config) *Registry {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}

	reg := prometheus.NewRegistry()
	m := &Registry{cfg: cfg, registry: reg}
	service := prometheus.Labels{"service": cfg.Service}

	factory := func(name, help string, labels ...string) *prometheus.CounterVec {
		v := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      name,
			Help:      help,
		}, append([]string{"service"}, labels...))
		reg.MustRegister(v)
		return v.MustCurryWith(service)
	}
	gaugeFactory := func(name, help string, labels ...string) *prometheus.GaugeVec {
		v := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      name,
			Help:      help,
		}, append([]string{"service"}, labels...))
		reg.MustRegister(v)
		return v.MustCurryWith(service)
	}
	histFactory := func(name, help string, buckets []float64, labels ...string) prometheus.ObserverVec {
		v := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, append([]string{"service"}, labels...))
		reg.MustRegister(v)
		return v.MustCurryWith(service)
	}

	m.RequestsTotal = factory("http_requests_total",
		"Total HTTP requests processed.",
		"method", "route", "status_code")
	m.RequestErrors = factory("http_requests_errors_total",
		"Total HTTP requests that completed with a 4xx or 5xx status.",
		"method", "route", "status_code")
	m.RequestDuration = histFactory("http_request_duration_seconds",
		"HTTP request latency in seconds.",
		prometheus.DefBuckets,
		"method", "route", "status_code")
	m.RequestsInFlight = gaugeFactory("http_requests_in_flight",
		"Number of HTTP requests currently being served.")
	m.RequestSize = histFactory("http_request_size_bytes",
		"HTTP request body size in bytes, as declared by Content-Length.",
		sizeBuckets,
		"method", "route")
	m.ResponseSize = histFactory("http_response_size_bytes",
		"HTTP response body size in bytes actually written.",
		sizeBuckets,
		"method", "route", "status_code")
	m.ExceptionsTotal = factory("http_exceptions_total",
		"Total HTTP requests aborted by a panic.",
		"route")
	m.FastRequests = factory("http_fast_requests_total",
		"Requests completed within a fixed latency threshold (milliseconds).",
		"route", "le_ms")

	m.ProductQuantity = gaugeFactory("inventory_quantity",
		"Current stock level per product.",
		"product_id")
	m.OrdersTotal = factory("orders_total",
		"Order attempts per product and outcome.",
		"product_id", "result")
	m.StockDecrements = factory("stock_decrements_total",
		"Successful single-unit stock decrements per product.",
		"product_id")
	m.TotalItems = gaugeFactory("inventory_total_items",
		"Number of distinct products tracked.")
	m.TotalQuantity = gaugeFactory("inventory_total_quantity",
		"Sum of stock quantities across all products.")
	m.OutOfStockItems = gaugeFactory("inventory_out_of_stock_items",
		"Number of products with zero quantity.")
	m.LowStockItems = gaugeFactory("inventory_low_stock_items",
		"Number of products at or below the low-stock threshold.")

	registerCollectors(reg, cfg)
	return m
}

// Service returns the configured service label value.
func (m *Registry) Service() string {
	return m.cfg.Service
}

// Gatherer exposes the underlying registry for exposition and tests.
func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
