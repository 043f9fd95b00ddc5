package repl

import (
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
)

// replBuiltins are handled by the loop itself rather than the CLI app.
var replBuiltins = []string{"help", "exit", "quit"}

// Completer suggests commands by prefix. The candidate list is walked
// off the CLI app's command tree so completions never drift from the
// commands that actually exist.
type Completer struct {
	commands []string
}

// NewCompleter builds a completer for app's commands and subcommands.
func NewCompleter(app *cli.App) *Completer {
	commands := append([]string(nil), replBuiltins...)
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}
		commands = append(commands, cmd.Name)
		for _, sub := range cmd.Subcommands {
			if sub.Hidden {
				continue
			}
			commands = append(commands, cmd.Name+" "+sub.Name)
		}
	}
	sort.Strings(commands)
	return &Completer{commands: commands}
}

// Complete returns the known commands starting with prefix, in sorted
// order. An empty prefix returns everything.
func (c *Completer) Complete(prefix string) []string {
	var matches []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}
