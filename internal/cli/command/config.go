// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/stockd/stockd/internal/cli/config"
	"github.com/stockd/stockd/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
//
// The group manages the CLI's own configuration file; the server reloads
// its configuration from disk on its own via the file watcher.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show CLI configuration",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration key (server, output)",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "validate",
				Usage:  "Validate the CLI configuration file",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	configPath := cliconfig.DefaultConfigPath()

	cfg, err := cliconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("CLI Configuration\n")
	fmt.Printf("=================\n\n")
	fmt.Printf("Config file: %s\n", configPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("(file does not exist yet, showing defaults)\n")
	}
	fmt.Printf("\n")

	fmt.Printf("Default server: %s\n", cfg.DefaultServer)
	fmt.Printf("Default output: %s\n", cfg.DefaultOutput)
	if cfg.CurrentConnection != "" {
		fmt.Printf("Current connection: %s\n", cfg.CurrentConnection)
	}

	if len(cfg.Connections) > 0 {
		fmt.Printf("\nSaved connections:\n")
		names := make([]string, 0, len(cfg.Connections))
		for name := range cfg.Connections {
			names = append(names, name)
		}
		sort.Strings(names)

		table := &output.Table{
			Headers: []string{"NAME", "SERVER", "TLS"},
		}
		for _, name := range names {
			conn := cfg.Connections[name]
			table.Rows = append(table.Rows, []string{
				name,
				conn.Server,
				fmt.Sprintf("%t", conn.TLS),
			})
		}
		return table.Render(os.Stdout)
	}
	return nil
}

func configSet(c *cli.Context) error {
	key := c.Args().Get(0)
	value := c.Args().Get(1)
	if key == "" || value == "" {
		return fmt.Errorf("usage: config set KEY VALUE")
	}

	cfg, err := cliconfig.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch key {
	case "server":
		cfg.DefaultServer = value
	case "output":
		cfg.DefaultOutput = value
	default:
		return fmt.Errorf("unknown key %q (valid: server, output)", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cliconfig.Save(cfg, ""); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ %s = %s\n", key, value)
	return nil
}

func configValidate(c *cli.Context) error {
	configPath := cliconfig.DefaultConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("No configuration file found at %s\n", configPath)
		fmt.Printf("Using default settings.\n")
		return nil
	}

	cfg, err := cliconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("✓ Configuration file is valid: %s\n", configPath)
	return nil
}
