// Package handler provides HTTP request handlers for stockd.
package handler

import (
	"net/http"
)

// handlePlaceOrder handles POST /api/order/{id}.
//
// One unit of stock is taken and durably persisted before the updated
// product is returned. The request carries no body; the product id in
// the path is the whole order.
//
// @req RQ-0301
// @design DS-0301
func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	product, err := h.inventorySvc.Order(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}
