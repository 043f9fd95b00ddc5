// Package certwatch provides TLS key pair hot-reload for stockd.
//
// This package keeps the server certificate current across rotations:
//
//   - Initial key pair load at startup
//   - Automatic reload when the certificate or key file changes
//   - Handshake-time lookup via tls.Config.GetCertificate
//
// Usage:
//
//	w, err := certwatch.NewWatcher(certFile, keyFile)
//	w.StartAsync()
//	defer w.Stop()
//	server.ListenAndServeTLS(w.GetCertificate)
//
// @design DS-0501
package certwatch
