// Package command provides CLI command definitions for stockd-cli.
//
// It uses urfave/cli/v2 for command parsing and supports both
// single-command mode and interactive REPL mode.
package command

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/stockd/stockd/internal/cli/config"
	"github.com/stockd/stockd/internal/cli/connection"
	"github.com/stockd/stockd/internal/cli/output"
	"github.com/stockd/stockd/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "stockd-cli",
		Usage:   "stockd command-line management tool",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ConnectCommand(),
			DisconnectCommand(),
			UseCommand(),
			InventoryCommand(),
			OrderCommand(),
			SystemCommand(),
			ConfigCommand(),
			REPLCommand(),
		},
		Before: func(c *cli.Context) error {
			// Initialize connection manager
			mgr := connection.NewManager()
			c.App.Metadata["connMgr"] = mgr

			// Saved connection profiles feed the default server address.
			// A broken config file never blocks unrelated commands; the
			// `config validate` command reports it.
			if cfg, err := cliconfig.Load(""); err == nil {
				c.App.Metadata["cliConfig"] = cfg
			}
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "stockd server address (e.g., localhost:3002)",
			EnvVars: []string{"STOCKD_SERVER"},
			Value:   "localhost:3002",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Request timeout (e.g., 30s, 1m)",
			Value:   30 * time.Second,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	// Server connection
	Server  string
	Timeout time.Duration

	// Output format
	Output string // table, json, yaml
	Wide   bool

	// Other
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context, falling back to
// the saved CLI configuration where a flag was not set explicitly.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server:  resolveServer(c),
		Timeout: c.Duration("timeout"),
		Output:  resolveOutput(c),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
}

// resolveServer picks the target server address. An explicit --server flag
// (or STOCKD_SERVER) always wins, then the current saved connection, then
// the configured default server, then the built-in default.
func resolveServer(c *cli.Context) string {
	if c.IsSet("server") {
		return c.String("server")
	}
	if cfg := GetCLIConfig(c); cfg != nil {
		if conn, ok := cfg.Connections[cfg.CurrentConnection]; ok && conn.Server != "" {
			return conn.Server
		}
		if cfg.DefaultServer != "" {
			return cfg.DefaultServer
		}
	}
	return c.String("server")
}

// resolveOutput picks the output format, preferring an explicit --output
// flag over the configured default.
func resolveOutput(c *cli.Context) string {
	if c.IsSet("output") {
		return c.String("output")
	}
	if cfg := GetCLIConfig(c); cfg != nil && cfg.DefaultOutput != "" {
		return cfg.DefaultOutput
	}
	return c.String("output")
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata["connMgr"].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// GetCLIConfig retrieves the loaded CLI configuration from context.
func GetCLIConfig(c *cli.Context) *cliconfig.CLIConfig {
	if cfg, ok := c.App.Metadata["cliConfig"].(*cliconfig.CLIConfig); ok {
		return cfg
	}
	return nil
}

// EnsureConnected returns an HTTP client for the target server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, error) {
	flags := ParseGlobalFlags(c)

	client := connection.NewHTTPClient(flags.Server, flags.Timeout)

	return client, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// renderStructured writes data as JSON or YAML when a machine-readable
// format was requested. It reports false when the command should print
// its human-oriented rendering instead.
func renderStructured(format output.Format, data any) (bool, error) {
	switch format {
	case output.FormatJSON:
		return true, (&output.JSONFormatter{}).Format(os.Stdout, data)
	case output.FormatYAML:
		return true, (&output.YAMLFormatter{}).Format(os.Stdout, data)
	default:
		return false, nil
	}
}
