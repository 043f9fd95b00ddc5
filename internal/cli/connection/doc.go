// Package connection provides connection management for stockd CLI.
//
// This package manages connections to stockd servers:
//
//   - manager.go: Connection state and health probing
//   - http.go: HTTP/HTTPS client implementation
//
// Features:
//
//   - Multiple connection profiles
//   - Health probe on connect
//   - Structured error decoding (body message plus X-Error-Code header)
//
// @design DS-0602
package connection
