// Package main provides the entry point for stockd-cli.
//
// The CLI tool provides command-line access to a stockd server for:
//
//   - Inventory queries (list products, inspect stock levels)
//   - Order placement (decrement stock one unit at a time)
//   - System administration (status summary, health checks)
//   - CLI configuration and saved connection profiles
//
// Usage:
//
//	stockd-cli [command] [flags]
//	stockd-cli inventory list --output json
//	stockd-cli order place 42
//	stockd-cli connect http://localhost:3002 --name local
//
// The CLI supports both single-command mode and interactive REPL mode.
//
// @design DS-0601
package main
