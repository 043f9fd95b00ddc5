package connection

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func healthServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"status":"ok"}`))
	}))
}

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Current() != nil {
		t.Error("new manager should have no current connection")
	}
}

func TestManager_Connect(t *testing.T) {
	server := healthServer(t, http.StatusOK)
	defer server.Close()

	m := NewManager()

	conn := &Connection{
		Name:   "test",
		Server: server.URL,
	}

	err := m.Connect(conn)
	if err != nil {
		t.Errorf("Connect failed: %v", err)
	}

	if m.Current() != conn {
		t.Error("Current() should return the connected connection")
	}

	if !m.IsConnected() {
		t.Error("IsConnected() should return true after Connect")
	}
}

func TestManager_Connect_UnhealthyServer(t *testing.T) {
	server := healthServer(t, http.StatusServiceUnavailable)
	defer server.Close()

	m := NewManager()

	err := m.Connect(&Connection{Name: "bad", Server: server.URL})
	if err == nil {
		t.Fatal("Connect should fail when the health probe returns non-200")
	}

	if m.IsConnected() {
		t.Error("failed Connect must not record a current connection")
	}
}

func TestManager_Connect_Unreachable(t *testing.T) {
	m := NewManager()

	// Port 0 is never listening.
	err := m.Connect(&Connection{Name: "down", Server: "127.0.0.1:0"})
	if err == nil {
		t.Fatal("Connect should fail for an unreachable server")
	}
}

func TestManager_Disconnect(t *testing.T) {
	server := healthServer(t, http.StatusOK)
	defer server.Close()

	m := NewManager()

	_ = m.Connect(&Connection{Name: "test", Server: server.URL})
	m.Disconnect()

	if m.Current() != nil {
		t.Error("Current() should return nil after Disconnect")
	}

	if m.IsConnected() {
		t.Error("IsConnected() should return false after Disconnect")
	}
}

func TestManager_Connect_ReplacesCurrent(t *testing.T) {
	server := healthServer(t, http.StatusOK)
	defer server.Close()

	m := NewManager()

	first := &Connection{Name: "first", Server: server.URL}
	second := &Connection{Name: "second", Server: server.URL}

	if err := m.Connect(first); err != nil {
		t.Fatalf("Connect(first) failed: %v", err)
	}
	if err := m.Connect(second); err != nil {
		t.Fatalf("Connect(second) failed: %v", err)
	}

	if m.Current() != second {
		t.Error("a later Connect should replace the current connection")
	}
}

func TestManager_FailedConnectKeepsCurrent(t *testing.T) {
	good := healthServer(t, http.StatusOK)
	defer good.Close()
	bad := healthServer(t, http.StatusServiceUnavailable)
	defer bad.Close()

	m := NewManager()

	conn := &Connection{Name: "good", Server: good.URL}
	if err := m.Connect(conn); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := m.Connect(&Connection{Name: "bad", Server: bad.URL}); err == nil {
		t.Fatal("Connect should fail against an unhealthy server")
	}

	if m.Current() != conn {
		t.Error("a failed Connect must leave the previous connection in place")
	}
}
