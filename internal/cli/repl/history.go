package repl

import (
	"os"
	"path/filepath"
	"strings"
)

const historyLimit = 1000

// History keeps the commands entered in a session and persists them
// to ~/.stockd/history between runs.
type History struct {
	entries []string
	limit   int
	file    string
}

// NewHistory returns a History backed by the default file under the
// user's home directory.
func NewHistory() *History {
	home, _ := os.UserHomeDir()
	return newHistoryAt(filepath.Join(home, ".stockd", "history"))
}

func newHistoryAt(path string) *History {
	return &History{limit: historyLimit, file: path}
}

// Add records a command. Blank lines and immediate repeats are not
// recorded; the oldest entry falls off past the limit.
func (h *History) Add(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Get returns the entry at index counting back from the most recent,
// so Get(0) is the last command. Out-of-range indexes return "".
func (h *History) Get(index int) string {
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len reports how many commands are held.
func (h *History) Len() int {
	return len(h.entries)
}

// Load restores entries from the history file. A missing file is not
// an error; it just means a first run.
func (h *History) Load() error {
	data, err := os.ReadFile(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		h.Add(line)
	}
	return nil
}

// Save writes all entries back to the history file, creating
// ~/.stockd with owner-only permissions like the CLI config does.
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.file), 0o700); err != nil {
		return err
	}

	var b strings.Builder
	for _, entry := range h.entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.file, []byte(b.String()), 0o600)
}
