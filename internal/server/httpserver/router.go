// Package httpserver provides the HTTP/HTTPS server for stockd.
package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/stockd/stockd/internal/core/service"
	"github.com/stockd/stockd/internal/server/httpserver/handler"
	"github.com/stockd/stockd/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// InventoryService handles inventory queries and orders.
	InventoryService *service.InventoryService

	// Metrics is the metrics registry; its handler is mounted at
	// /metrics and the telemetry middleware records into it.
	Metrics *metric.Registry

	// Logger for request logging.
	Logger *slog.Logger

	// CORSAllowedOrigins is the list of allowed CORS origins (empty = allow all).
	CORSAllowedOrigins []string

	// GlobalRateLimit is the global rate limit per IP (requests/second).
	// Zero disables rate limiting.
	GlobalRateLimit int

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware. Every application route runs through the telemetry
// middleware; /metrics itself is deliberately excluded so scraping does
// not move the series it reads.
//
// @req RQ-0201
// @design DS-0301, DS-0302
func NewRouter(cfg *RouterConfig) http.Handler {
	// Create handler with services
	h := handler.New(cfg.InventoryService, cfg.Metrics.Service(), cfg.Logger)

	// Build the middleware chain for application endpoints.
	// Order: RateLimit -> Audit -> RequestID -> Recover -> CORS -> Telemetry -> Handler
	middlewares := []Middleware{}
	if cfg.GlobalRateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.GlobalRateLimit))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(cfg.Logger))
	}
	middlewares = append(middlewares,
		RequestID(),
		Recover(cfg.Logger),
		CORS(cfg.CORSAllowedOrigins),
		Telemetry(cfg.Metrics),
	)
	appHandler := Chain(h, middlewares...)

	// Top-level mux. The patterns here define the route label values the
	// telemetry middleware reports.
	mux := http.NewServeMux()

	// Health endpoint
	mux.Handle("GET /healthz", appHandler)

	// Inventory endpoints
	mux.Handle("GET /api/inventory", appHandler)
	mux.Handle("GET /api/inventory/{id}", appHandler)

	// Order endpoint
	mux.Handle("POST /api/order/{id}", appHandler)

	// System status endpoint
	mux.Handle("GET /api/system/status", appHandler)

	// Metrics endpoint: request ID and panic recovery only, never the
	// telemetry middleware.
	mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), RequestID(), Recover(cfg.Logger)))

	// Everything else falls through to the handler's JSON 404.
	mux.Handle("/", appHandler)

	return mux
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		GlobalRateLimit: 0, // disabled
		EnableAudit:     true,
	}
}
