// Package handler provides HTTP request handlers for stockd.
//
// This package contains handlers for all HTTP endpoints:
//
//   - inventory.go: Inventory listing and single-product lookup
//   - order.go: The order operation (decrement one unit of stock)
//   - system.go: Operational status summary
//   - health.go: Liveness check
//
// Every handler runs the same sequence: validate the request, call the
// inventory service, write the JSON response, and map domain errors to
// HTTP status codes.
//
// Responses are bare JSON documents. Errors carry an {"error": message}
// body plus an X-Error-Code header with the structured code.
//
// @req RQ-0301
// @design DS-0301
package handler
