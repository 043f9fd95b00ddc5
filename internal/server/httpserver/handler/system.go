// Package handler provides HTTP request handlers for stockd.
package handler

import (
	"net/http"
	"time"

	"github.com/stockd/stockd/internal/infra/buildinfo"
)

// handleSystemStatus handles GET /api/system/status.
//
// @design DS-0302
func (h *Handler) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	summary := h.inventorySvc.Status(r.Context())

	h.writeJSON(w, http.StatusOK, SystemStatusResponse{
		Service:           h.serviceName,
		Status:            "running",
		Version:           buildinfo.Version,
		Items:             summary.Items,
		TotalQuantity:     summary.TotalQuantity,
		OutOfStockItems:   summary.OutOfStockItems,
		LowStockItems:     summary.LowStockItems,
		LowStockThreshold: summary.LowStockThreshold,
		Uptime:            summary.Uptime.Round(time.Second).String(),
		Time:              time.Now().UTC().Format(time.RFC3339),
	})
}
