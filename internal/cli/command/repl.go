// Package command provides CLI command definitions for stockd-cli.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/stockd/stockd/internal/cli/repl"
)

// REPLCommand returns the interactive shell command.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive shell",
		Action: func(c *cli.Context) error {
			r := repl.New(c.App)
			return r.Run()
		},
	}
}
