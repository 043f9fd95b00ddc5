// Package config provides CLI configuration for stockd.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.stockd/cli.yaml)
//   - loader.go: YAML loading and saving
//
// Configuration includes:
//
//   - Default server and output format
//   - Saved connection profiles
//   - The currently selected connection
//
// @design DS-0601
package config
