// Package domain defines the core domain models for stockd.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Product: Stocked item with id and quantity
//   - Errors: Domain-specific error definitions
//
// The error taxonomy distinguishes expected business outcomes
// (not found, out of stock, invalid payload) from systemic failures
// (persistence, unhandled faults); the numeric code suffix carries
// the HTTP status the error surfaces as.
//
// @req RQ-0101
// @design DS-0101
package domain
