// Package service provides domain services for stockd.
//
// Domain services contain pure business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - InventoryService: stock queries, the single-unit order operation,
//     and inventory gauge maintenance
//
// Services are thread-safe and designed for high-concurrency scenarios.
//
// @req RQ-0102
// @design DS-0103
package service
