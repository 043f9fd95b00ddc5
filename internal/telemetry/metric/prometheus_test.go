// Package metric provides Prometheus metrics for stockd.
package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// scrape renders the registry through its HTTP handler and returns the
// exposition text.
func scrape(t *testing.T, m *Registry) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("scrape returned status %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read scrape body: %v", err)
	}
	return string(body)
}

func TestNew(t *testing.T) {
	m := New(Config{Namespace: "stockd", Service: "stockd"})
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.registry == nil {
		t.Error("registry field is nil")
	}
	if m.RequestsTotal == nil {
		t.Error("RequestsTotal is nil")
	}
	if m.RequestDuration == nil {
		t.Error("RequestDuration is nil")
	}
	if m.RequestsInFlight == nil {
		t.Error("RequestsInFlight is nil")
	}
	if m.ProductQuantity == nil {
		t.Error("ProductQuantity is nil")
	}
	if m.OrdersTotal == nil {
		t.Error("OrdersTotal is nil")
	}
	if m.LowStockItems == nil {
		t.Error("LowStockItems is nil")
	}
}

func TestNewDefaults(t *testing.T) {
	m := New(Config{})
	if m.Service() != DefaultService {
		t.Errorf("Service() = %q, want %q", m.Service(), DefaultService)
	}

	m.RequestsInFlight.WithLabelValues().Inc()
	body := scrape(t, m)
	if !strings.Contains(body, `stockd_http_requests_in_flight{service="stockd"} 1`) {
		t.Error("expected default namespace and service label in exposition")
	}
}

func TestRequestMetrics(t *testing.T) {
	m := New(Config{Namespace: "stockd", Service: "stockd"})

	m.RequestsTotal.WithLabelValues("GET", "/api/inventory", "200").Inc()
	m.RequestsTotal.WithLabelValues("GET", "/api/inventory", "200").Inc()
	m.RequestsTotal.WithLabelValues("POST", "/api/order/{id}", "400").Inc()
	m.RequestErrors.WithLabelValues("POST", "/api/order/{id}", "400").Inc()
	m.RequestDuration.WithLabelValues("GET", "/api/inventory", "200").Observe(0.012)
	m.RequestSize.WithLabelValues("POST", "/api/order/{id}").Observe(0)
	m.ResponseSize.WithLabelValues("GET", "/api/inventory", "200").Observe(512)
	m.ExceptionsTotal.WithLabelValues("/api/order/{id}").Inc()
	m.FastRequests.WithLabelValues("/healthz", "50").Inc()
	m.FastRequests.WithLabelValues("/healthz", "200").Inc()

	body := scrape(t, m)

	if !strings.Contains(body, `stockd_http_requests_total{method="GET",route="/api/inventory",service="stockd",status_code="200"} 2`) {
		t.Error("expected requests_total for GET /api/inventory")
	}
	if !strings.Contains(body, `stockd_http_requests_errors_total{method="POST",route="/api/order/{id}",service="stockd",status_code="400"} 1`) {
		t.Error("expected requests_errors_total for POST /api/order/{id}")
	}
	if !strings.Contains(body, "stockd_http_request_duration_seconds_bucket") {
		t.Error("expected request_duration_seconds buckets")
	}
	if !strings.Contains(body, `stockd_http_response_size_bytes_sum{method="GET",route="/api/inventory",service="stockd",status_code="200"} 512`) {
		t.Error("expected response_size_bytes sum of 512")
	}
	if !strings.Contains(body, `stockd_http_exceptions_total{route="/api/order/{id}",service="stockd"} 1`) {
		t.Error("expected exceptions_total for /api/order/{id}")
	}
	if !strings.Contains(body, `stockd_http_fast_requests_total{le_ms="50",route="/healthz",service="stockd"} 1`) {
		t.Error("expected fast_requests_total at le_ms=50")
	}
	if !strings.Contains(body, `stockd_http_fast_requests_total{le_ms="200",route="/healthz",service="stockd"} 1`) {
		t.Error("expected fast_requests_total at le_ms=200")
	}
}

func TestInFlightGauge(t *testing.T) {
	m := New(Config{Namespace: "stockd", Service: "stockd"})

	m.RequestsInFlight.WithLabelValues().Inc()
	m.RequestsInFlight.WithLabelValues().Inc()
	m.RequestsInFlight.WithLabelValues().Dec()

	body := scrape(t, m)
	if !strings.Contains(body, `stockd_http_requests_in_flight{service="stockd"} 1`) {
		t.Error("expected in-flight gauge at 1")
	}
}

func TestInventoryMetrics(t *testing.T) {
	m := New(Config{Namespace: "stockd", Service: "stockd"})

	m.ProductQuantity.WithLabelValues("1").Set(98)
	m.ProductQuantity.WithLabelValues("7").Set(0)
	m.OrdersTotal.WithLabelValues("1", "success").Inc()
	m.OrdersTotal.WithLabelValues("1", "success").Inc()
	m.OrdersTotal.WithLabelValues("7", "out_of_stock").Inc()
	m.OrdersTotal.WithLabelValues("99", "not_found").Inc()
	m.StockDecrements.WithLabelValues("1").Inc()
	m.TotalItems.WithLabelValues().Set(12)
	m.TotalQuantity.WithLabelValues().Set(790)
	m.OutOfStockItems.WithLabelValues().Set(1)
	m.LowStockItems.WithLabelValues().Set(2)

	body := scrape(t, m)

	if !strings.Contains(body, `stockd_inventory_quantity{product_id="1",service="stockd"} 98`) {
		t.Error("expected inventory_quantity for product 1")
	}
	if !strings.Contains(body, `stockd_orders_total{product_id="1",result="success",service="stockd"} 2`) {
		t.Error("expected orders_total success for product 1")
	}
	if !strings.Contains(body, `stockd_orders_total{product_id="7",result="out_of_stock",service="stockd"} 1`) {
		t.Error("expected orders_total out_of_stock for product 7")
	}
	if !strings.Contains(body, `stockd_orders_total{product_id="99",result="not_found",service="stockd"} 1`) {
		t.Error("expected orders_total not_found for product 99")
	}
	if !strings.Contains(body, `stockd_stock_decrements_total{product_id="1",service="stockd"} 1`) {
		t.Error("expected stock_decrements_total for product 1")
	}
	if !strings.Contains(body, `stockd_inventory_total_items{service="stockd"} 12`) {
		t.Error("expected inventory_total_items 12")
	}
	if !strings.Contains(body, `stockd_inventory_total_quantity{service="stockd"} 790`) {
		t.Error("expected inventory_total_quantity 790")
	}
	if !strings.Contains(body, `stockd_inventory_out_of_stock_items{service="stockd"} 1`) {
		t.Error("expected inventory_out_of_stock_items 1")
	}
	if !strings.Contains(body, `stockd_inventory_low_stock_items{service="stockd"} 2`) {
		t.Error("expected inventory_low_stock_items 2")
	}
}

func TestCustomNamespace(t *testing.T) {
	m := New(Config{Namespace: "warehouse", Service: "warehouse-eu"})

	m.RequestsTotal.WithLabelValues("GET", "/healthz", "200").Inc()

	body := scrape(t, m)
	if !strings.Contains(body, `warehouse_http_requests_total{method="GET",route="/healthz",service="warehouse-eu",status_code="200"} 1`) {
		t.Error("expected custom namespace and service label")
	}
}
