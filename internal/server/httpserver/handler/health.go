// Package handler provides HTTP request handlers for stockd.
package handler

import (
	"net/http"
)

// handleHealth handles GET /healthz.
//
// The body is the fixed liveness document probes match on.
//
// @design DS-0301
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
