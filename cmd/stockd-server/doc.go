// Package main provides the entry point for stockd-server.
//
// The server is the core stockd service that provides:
//
//   - HTTP/HTTPS API for inventory queries and single-unit orders
//   - Flat-file persistence with atomic rewrites on every change
//   - Prometheus metrics exposition on /metrics
//   - Live reload of the low-stock threshold and log level
//
// Usage:
//
//	stockd-server [flags]
//	stockd-server --config /path/to/config.yaml
//
// The server loads configuration, restores the persisted inventory, and
// starts the HTTP listener.
//
// @design DS-0501
package main
