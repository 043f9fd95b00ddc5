// Package repl provides the interactive REPL mode for stockd-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	app       *cli.App
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// New creates a new REPL that dispatches lines through the given CLI app.
func New(app *cli.App) *REPL {
	return &REPL{
		app:       app,
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(app),
		history:   NewHistory(),
	}
}

// Run starts the REPL loop. History is restored at startup and persisted
// on exit.
func (r *REPL) Run() error {
	r.history.Load()
	defer r.history.Save()

	reader := bufio.NewReader(r.input)

	for {
		// Print prompt
		fmt.Fprint(r.output, "stockd> ")

		// Read line
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		// Trim and skip empty lines
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Add to history
		r.history.Add(line)

		// Handle special commands
		if line == "exit" || line == "quit" {
			return nil
		}

		// A trailing '?' asks for completions instead of executing
		if strings.HasSuffix(line, "?") {
			r.suggest(strings.TrimSpace(strings.TrimSuffix(line, "?")))
			continue
		}

		// Execute command
		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

// execute dispatches a single line through the CLI application.
func (r *REPL) execute(line string) error {
	args := append([]string{r.app.Name}, strings.Fields(line)...)
	return r.app.Run(args)
}

// suggest prints the commands matching the given prefix.
func (r *REPL) suggest(prefix string) {
	suggestions := r.completer.Complete(prefix)
	if len(suggestions) == 0 {
		fmt.Fprintf(r.output, "No commands match %q\n", prefix)
		return
	}
	for _, s := range suggestions {
		fmt.Fprintf(r.output, "  %s\n", s)
	}
}
