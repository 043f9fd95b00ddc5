// Package config provides server configuration for stockd.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (addresses, paths, TLS pairing)
//
// Configuration is loaded via internal/infra/confloader and layered from
// defaults, a YAML file, and STOCKD_* environment variables.
//
// @req RQ-0502
// @design DS-0502
package config
