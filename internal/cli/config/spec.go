// Package config defines the CLI configuration structure.
package config

import "fmt"

// CLIConfig is the operator-side configuration persisted at
// ~/.stockd/cli.yaml. It never configures the server itself; it
// remembers which servers this CLI talks to and how results render.
type CLIConfig struct {
	DefaultServer string `yaml:"default_server"`
	DefaultOutput string `yaml:"default_output"`

	// Saved server profiles, keyed by the name given to `connect --name`.
	Connections map[string]ConnectionConfig `yaml:"connections"`

	// CurrentConnection names the profile `use` selected, if any.
	CurrentConnection string `yaml:"current_connection"`
}

// ConnectionConfig is one saved server profile.
type ConnectionConfig struct {
	Server string `yaml:"server"`
	TLS    bool   `yaml:"tls"`
}

// Default returns the configuration assumed when no file exists yet.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "http://localhost:3002",
		DefaultOutput: "table",
		Connections:   make(map[string]ConnectionConfig),
	}
}

// Validate checks what parsing alone cannot: that the output format
// is one the CLI renders and that the current connection refers to a
// saved profile.
func (c *CLIConfig) Validate() error {
	switch c.DefaultOutput {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid default_output %q (valid: table, json, yaml)", c.DefaultOutput)
	}

	if c.CurrentConnection != "" {
		if _, ok := c.Connections[c.CurrentConnection]; !ok {
			return fmt.Errorf("current_connection %q has no saved profile", c.CurrentConnection)
		}
	}
	return nil
}
