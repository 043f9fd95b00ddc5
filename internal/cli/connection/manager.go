// Package connection provides connection management for stockd-cli.
package connection

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Manager manages connections to stockd servers.
type Manager struct {
	current *Connection
}

// Connection represents a connection to a stockd server.
type Connection struct {
	Name   string
	Server string
	TLS    bool
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect probes the server's health endpoint and, on success, records
// the connection as current.
func (m *Manager) Connect(conn *Connection) error {
	client := NewHTTPClient(conn.Server, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("probe %s: %w", conn.Server, err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe %s: unexpected status %d", conn.Server, resp.StatusCode)
	}

	m.current = conn
	return nil
}

// Disconnect closes the current connection.
func (m *Manager) Disconnect() {
	m.current = nil
}

// Current returns the current connection.
func (m *Manager) Current() *Connection {
	return m.current
}

// IsConnected returns true if connected to a server.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}
