// Package httpserver provides the HTTP/HTTPS server for stockd.
//
// This package implements the primary external API using stdlib net/http:
//
//   - Inventory endpoints: /api/inventory, /api/inventory/{id}
//   - Order endpoint: /api/order/{id}
//   - System endpoints: /api/system/status
//   - Health and exposition endpoints: /healthz, /metrics
//
// Features:
//
//   - Middleware chain: RateLimit, Audit, RequestID, Recover, CORS, Telemetry
//   - Request telemetry recorded per route template, never per raw path
//   - Graceful shutdown with configurable timeout
//   - TLS support
//
// The /metrics endpoint runs outside the telemetry middleware so scraping
// never moves the series being read.
//
// @req RQ-0301
// @design DS-0301
package httpserver
