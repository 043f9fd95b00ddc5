// Package httpserver provides the HTTP/HTTPS server for stockd.
//
// It uses the Go standard library net/http for implementation,
// providing RESTful API endpoints for inventory queries and orders.
package httpserver

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Server represents the HTTP server.
//
// @req RQ-0301
// @design DS-0301
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new HTTP server.
//
// @design DS-0301
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: handler,
	}
}

// ListenAndServe starts the HTTP server.
//
// @design DS-0301
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// ListenAndServeTLS starts the HTTPS server. The certificate is resolved
// through getCert on every handshake, so rotated key pairs take effect
// without a restart.
//
// @design DS-0301
func (s *Server) ListenAndServeTLS(getCert func(*tls.ClientHelloInfo) (*tls.Certificate, error)) error {
	s.httpServer.TLSConfig = &tls.Config{
		GetCertificate: getCert,
		MinVersion:     tls.VersionTLS12,
	}
	return s.httpServer.ListenAndServeTLS("", "")
}

// Shutdown gracefully shuts down the server.
//
// @design DS-0301
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
