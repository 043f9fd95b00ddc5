// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/stockd/stockd/internal/cli/config"
	"github.com/stockd/stockd/internal/cli/connection"
	"github.com/stockd/stockd/internal/cli/output"
)

// ConnectCommand returns the connect command.
func ConnectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "Connect to a stockd server",
		ArgsUsage: "[SERVER]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Connection name (saved as a profile for `use`)",
			},
		},
		Action: connectAction,
	}
}

func connectAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	server := c.Args().First()
	if server == "" {
		server = flags.Server
	}

	mgr := GetConnectionManager(c)
	if mgr == nil {
		return fmt.Errorf("connection manager not initialized")
	}

	conn := &connection.Connection{
		Name:   c.String("name"),
		Server: server,
		TLS:    strings.HasPrefix(server, "https://"),
	}

	spinner := output.NewSpinner(os.Stdout, fmt.Sprintf("Connecting to %s...", server))
	spinner.Start()

	if err := mgr.Connect(conn); err != nil {
		spinner.Fail(fmt.Sprintf("Connection failed: %v", err))
		return fmt.Errorf("connect failed: %w", err)
	}
	spinner.Success(fmt.Sprintf("Connected to %s", server))

	// A named connection is persisted as a profile for later `use`.
	if name := c.String("name"); name != "" {
		if err := saveConnectionProfile(c, name, conn); err != nil {
			PrintError("save connection profile: %v", err)
		} else {
			fmt.Printf("Saved connection profile %q\n", name)
		}
	}
	return nil
}

func saveConnectionProfile(c *cli.Context, name string, conn *connection.Connection) error {
	cfg := GetCLIConfig(c)
	if cfg == nil {
		var err error
		cfg, err = cliconfig.Load("")
		if err != nil {
			return err
		}
	}
	cfg.Connections[name] = cliconfig.ConnectionConfig{
		Server: conn.Server,
		TLS:    conn.TLS,
	}
	cfg.CurrentConnection = name
	return cliconfig.Save(cfg, "")
}

// DisconnectCommand returns the disconnect command.
func DisconnectCommand() *cli.Command {
	return &cli.Command{
		Name:   "disconnect",
		Usage:  "Disconnect from the current server",
		Action: disconnectAction,
	}
}

func disconnectAction(c *cli.Context) error {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		return fmt.Errorf("connection manager not initialized")
	}

	if !mgr.IsConnected() {
		fmt.Println("Not connected to any server")
		return nil
	}

	mgr.Disconnect()
	fmt.Println("Disconnected")
	return nil
}

// UseCommand returns the use command for switching connections.
func UseCommand() *cli.Command {
	return &cli.Command{
		Name:      "use",
		Usage:     "Switch to a saved connection",
		ArgsUsage: "CONNECTION_NAME",
		Action:    useAction,
	}
}

func useAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("connection name required")
	}

	cfg := GetCLIConfig(c)
	if cfg == nil {
		var err error
		cfg, err = cliconfig.Load("")
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	conn, ok := cfg.Connections[name]
	if !ok {
		return fmt.Errorf("unknown connection %q (save one with `connect --name`)", name)
	}

	cfg.CurrentConnection = name
	if err := cliconfig.Save(cfg, ""); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Switched to connection %q (%s)\n", name, conn.Server)
	return nil
}
