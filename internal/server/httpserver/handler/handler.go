// Package handler provides HTTP request handlers for stockd.
//
// This package implements the HTTP API endpoints for inventory queries,
// the order operation, and system status.
//
// @req RQ-0301
// @design DS-0301
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/stockd/stockd/internal/core/domain"
	"github.com/stockd/stockd/internal/core/service"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
//
// @design DS-0301
type Handler struct {
	inventorySvc *service.InventoryService
	serviceName  string
	logger       *slog.Logger
	mux          *http.ServeMux
}

// New creates a new Handler with the given services. serviceName is the
// identity reported by the status endpoint; it matches the service label
// on the metrics.
//
// @design DS-0301
func New(inventorySvc *service.InventoryService, serviceName string, logger *slog.Logger) *Handler {
	h := &Handler{
		inventorySvc: inventorySvc,
		serviceName:  serviceName,
		logger:       logger,
		mux:          http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoint
	h.mux.HandleFunc("GET /healthz", h.handleHealth)

	// Inventory endpoints
	h.mux.HandleFunc("GET /api/inventory", h.handleListInventory)
	h.mux.HandleFunc("GET /api/inventory/{id}", h.handleGetProduct)

	// Order endpoint
	h.mux.HandleFunc("POST /api/order/{id}", h.handlePlaceOrder)

	// System endpoints
	h.mux.HandleFunc("GET /api/system/status", h.handleSystemStatus)

	// Everything else is a structured JSON 404, never the stdlib text one.
	h.mux.HandleFunc("/", h.handleNotFound)
}

// writeJSON writes a bare JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a bare {"error": message} response body.
func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// handleServiceError converts service errors to HTTP responses. Expected
// business outcomes keep their domain message; anything else is logged
// and masked as a generic 500.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		}
		h.writeError(w, status, code, domain.GetErrorMessage(err))
		return
	}

	h.logger.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
	h.writeError(w, http.StatusInternalServerError, domain.ErrInternalServer.Code, domain.ErrInternalServer.Message)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes by their
// numeric suffix.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-4290"):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// productIDFromPath parses the {id} path segment. Anything that is not a
// positive integer is an invalid payload, not a framework-level miss.
func productIDFromPath(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidPayload.WithDetails("product id must be a positive integer")
	}
	return id, nil
}

// handleNotFound is the fallback for unrouted paths.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, domain.ErrRouteNotFound.Code, domain.ErrRouteNotFound.Message)
}
