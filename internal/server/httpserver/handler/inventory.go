// Package handler provides HTTP request handlers for stockd.
package handler

import (
	"net/http"

	"github.com/stockd/stockd/internal/core/domain"
)

// handleListInventory handles GET /api/inventory.
//
// The body is the full item sequence in stored order, as a bare JSON
// array. An empty inventory renders as [] rather than null.
//
// @req RQ-0301
// @design DS-0301
func (h *Handler) handleListInventory(w http.ResponseWriter, r *http.Request) {
	products := h.inventorySvc.List(r.Context())
	if products == nil {
		products = []domain.Product{}
	}
	h.writeJSON(w, http.StatusOK, products)
}

// handleGetProduct handles GET /api/inventory/{id}.
//
// @req RQ-0301
// @design DS-0301
func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	product, err := h.inventorySvc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}
