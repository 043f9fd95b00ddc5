package command

import (
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/stockd/stockd/internal/cli/connection"
)

// mockServer routes requests to the handler with the longest matching
// path prefix, so /api/inventory/42 can coexist with /api/inventory.
type mockServer struct {
	*httptest.Server
	patterns []string
	handlers map[string]http.HandlerFunc
}

func newMockServer() *mockServer {
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, pattern := range m.patterns {
			if strings.HasPrefix(r.URL.Path, pattern) {
				m.handlers[pattern](w, r)
				return
			}
		}
		http.NotFound(w, r)
	}))
	return m
}

func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	if _, dup := m.handlers[pattern]; !dup {
		m.patterns = append(m.patterns, pattern)
		sort.Slice(m.patterns, func(i, j int) bool {
			return len(m.patterns[i]) > len(m.patterns[j])
		})
	}
	m.handlers[pattern] = handler
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error response the way the server does: a bare
// {"error": message} body with the code in the X-Error-Code header.
func errorResponse(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("X-Error-Code", code)
	jsonResponse(w, status, map[string]string{"error": message})
}

// testContext builds a CLI context aimed at the mock server. args are
// parsed against the global flags, so tests can pass flag values and
// positional arguments alike.
func testContext(server *mockServer, args ...string) *cli.Context {
	return testContextWithFlags(server, nil, args...)
}

// testContextWithFlags additionally registers command-level string
// flags, for actions that read flags the global set does not define.
func testContextWithFlags(server *mockServer, stringFlags map[string]string, args ...string) *cli.Context {
	app := &cli.App{
		Name:  "test",
		Flags: globalFlags(),
		Metadata: map[string]any{
			"connMgr": connection.NewManager(),
		},
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}

	fullArgs := []string{"--server", server.URL}
	names := make([]string, 0, len(stringFlags))
	for name := range stringFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		(&cli.StringFlag{Name: name}).Apply(set)
		if v := stringFlags[name]; v != "" {
			fullArgs = append(fullArgs, "--"+name, v)
		}
	}
	fullArgs = append(fullArgs, args...)
	set.Parse(fullArgs)

	return cli.NewContext(app, set, nil)
}

// Sample data generators

func sampleProducts() []productRow {
	return []productRow{
		{ID: 1, Quantity: 5},
		{ID: 2, Quantity: 0},
		{ID: 3, Quantity: 12},
	}
}

func sampleStatus() map[string]any {
	return map[string]any{
		"service":             "stockd",
		"status":              "running",
		"version":             "dev",
		"items":               3,
		"total_quantity":      17,
		"out_of_stock_items":  1,
		"low_stock_items":     1,
		"low_stock_threshold": 5,
		"uptime":              "1h2m3s",
		"time":                "2026-01-02T15:04:05Z",
	}
}
