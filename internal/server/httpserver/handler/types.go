// Package handler provides HTTP request handlers for stockd.
package handler

// ErrorResponse is the standard error response body. The machine-readable
// error code travels in the X-Error-Code header, not the body.
//
// @design DS-0301
type ErrorResponse struct {
	Error string `json:"error"`
}

// SystemStatusResponse is the response body for GET /api/system/status.
//
// @design DS-0302
type SystemStatusResponse struct {
	Service           string `json:"service"`
	Status            string `json:"status"`
	Version           string `json:"version"`
	Items             int    `json:"items"`
	TotalQuantity     int64  `json:"total_quantity"`
	OutOfStockItems   int    `json:"out_of_stock_items"`
	LowStockItems     int    `json:"low_stock_items"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	Uptime            string `json:"uptime"`
	Time              string `json:"time"`
}
