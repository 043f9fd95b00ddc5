// Package service provides domain services for stockd.
//
// InventoryService handles stock queries and the order operation.
package service

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/stockd/stockd/internal/core/domain"
	"github.com/stockd/stockd/internal/telemetry/metric"
)

// InventoryRepository defines the storage interface for inventory operations.
//
// @design DS-0103
type InventoryRepository interface {
	// Get retrieves a product by id.
	Get(ctx context.Context, id int64) (domain.Product, error)

	// Snapshot returns a copy of all products in stored order.
	Snapshot(ctx context.Context) []domain.Product

	// DecrementOrder decrements one unit of stock and persists the
	// result durably before reporting success.
	DecrementOrder(ctx context.Context, id int64) (domain.Product, error)
}

// Order outcomes recorded on the orders counter.
const (
	OrderResultSuccess    = "success"
	OrderResultOutOfStock = "out_of_stock"
	OrderResultNotFound   = "not_found"
)

// DefaultLowStockThreshold is the quantity at or below which a product
// counts as running low.
const DefaultLowStockThreshold = 10

// InventoryServiceConfig contains configuration for InventoryService.
//
// @design DS-0103
type InventoryServiceConfig struct {
	// LowStockThreshold is the quantity at or below which a product
	// counts as low stock. Out-of-stock products count here as well.
	LowStockThreshold int64
}

// DefaultInventoryServiceConfig returns the default configuration.
func DefaultInventoryServiceConfig() *InventoryServiceConfig {
	return &InventoryServiceConfig{
		LowStockThreshold: DefaultLowStockThreshold,
	}
}

// InventoryService handles inventory queries and single-unit orders,
// and keeps the inventory metrics in step with every mutation.
//
// @req RQ-0102
// @design DS-0103
type InventoryService struct {
	repo      InventoryRepository
	metrics   *metric.Registry
	threshold atomic.Int64
	startedAt time.Time
}

// NewInventoryService creates a new InventoryService.
//
// @design DS-0103
func NewInventoryService(repo InventoryRepository, metrics *metric.Registry, cfg *InventoryServiceConfig) *InventoryService {
	if cfg == nil {
		cfg = DefaultInventoryServiceConfig()
	}

	s := &InventoryService{
		repo:      repo,
		metrics:   metrics,
		startedAt: time.Now(),
	}
	s.threshold.Store(cfg.LowStockThreshold)
	return s
}

// ============================================================================
// Queries
// ============================================================================

// List returns all products in stored order.
func (s *InventoryService) List(ctx context.Context) []domain.Product {
	return s.repo.Snapshot(ctx)
}

// Get returns a single product by id. A miss is recorded as a not_found
// order outcome: single-product lookups are treated as order intent.
//
// @req RQ-0102
func (s *InventoryService) Get(ctx context.Context, id int64) (domain.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.metrics.OrdersTotal.WithLabelValues(formatProductID(id), OrderResultNotFound).Inc()
		}
		return domain.Product{}, err
	}
	return product, nil
}

// ============================================================================
// Order Operation
// ============================================================================

// Order attempts to take one unit of stock for the given product. On
// success the updated product is returned and the quantity and aggregate
// gauges are refreshed. Unknown products and exhausted products are
// recorded as not_found and out_of_stock outcomes. Persistence faults
// are not order outcomes; they propagate untouched.
//
// @req RQ-0102
// @design DS-0103
func (s *InventoryService) Order(ctx context.Context, id int64) (domain.Product, error) {
	pid := formatProductID(id)

	product, err := s.repo.DecrementOrder(ctx, id)
	switch {
	case err == nil:
		s.metrics.OrdersTotal.WithLabelValues(pid, OrderResultSuccess).Inc()
		s.metrics.StockDecrements.WithLabelValues(pid).Inc()
		s.metrics.ProductQuantity.WithLabelValues(pid).Set(float64(product.Quantity))
		s.refreshAggregates(ctx)
		return product, nil

	case errors.Is(err, domain.ErrProductNotFound):
		s.metrics.OrdersTotal.WithLabelValues(pid, OrderResultNotFound).Inc()
		return domain.Product{}, err

	case errors.Is(err, domain.ErrOutOfStock):
		s.metrics.OrdersTotal.WithLabelValues(pid, OrderResultOutOfStock).Inc()
		return domain.Product{}, err

	default:
		return domain.Product{}, err
	}
}

// ============================================================================
// Gauge Maintenance
// ============================================================================

// RefreshGauges recomputes every per-product quantity gauge and the
// aggregate gauges from a full snapshot. Called once at startup and
// available to re-sync after external file edits.
//
// @design DS-0103
func (s *InventoryService) RefreshGauges(ctx context.Context) {
	products := s.repo.Snapshot(ctx)
	for _, p := range products {
		s.metrics.ProductQuantity.WithLabelValues(formatProductID(p.ID)).Set(float64(p.Quantity))
	}
	s.updateAggregates(products)
}

// refreshAggregates recomputes only the aggregate gauges.
func (s *InventoryService) refreshAggregates(ctx context.Context) {
	s.updateAggregates(s.repo.Snapshot(ctx))
}

func (s *InventoryService) updateAggregates(products []domain.Product) {
	threshold := s.threshold.Load()

	var totalQuantity int64
	var outOfStock, lowStock int
	for _, p := range products {
		totalQuantity += p.Quantity
		if p.Quantity == 0 {
			outOfStock++
		}
		// Out-of-stock products satisfy the low-stock cutoff too; the
		// two gauges count independently.
		if p.Quantity <= threshold {
			lowStock++
		}
	}

	s.metrics.TotalItems.WithLabelValues().Set(float64(len(products)))
	s.metrics.TotalQuantity.WithLabelValues().Set(float64(totalQuantity))
	s.metrics.OutOfStockItems.WithLabelValues().Set(float64(outOfStock))
	s.metrics.LowStockItems.WithLabelValues().Set(float64(lowStock))
}

// SetLowStockThreshold updates the low-stock cutoff and recomputes the
// aggregate gauges. Safe for concurrent use; the config watcher calls
// this on live reload.
func (s *InventoryService) SetLowStockThreshold(ctx context.Context, threshold int64) {
	if threshold < 0 {
		threshold = 0
	}
	s.threshold.Store(threshold)
	s.refreshAggregates(ctx)
}

// LowStockThreshold returns the current low-stock cutoff.
func (s *InventoryService) LowStockThreshold() int64 {
	return s.threshold.Load()
}

// ============================================================================
// Status
// ============================================================================

// StatusSummary is a point-in-time operational summary of the inventory.
//
// @design DS-0103
type StatusSummary struct {
	Items             int
	TotalQuantity     int64
	OutOfStockItems   int
	LowStockItems     int
	LowStockThreshold int64
	Uptime            time.Duration
}

// Status computes a summary of the current inventory state.
func (s *InventoryService) Status(ctx context.Context) *StatusSummary {
	products := s.repo.Snapshot(ctx)
	threshold := s.threshold.Load()

	summary := &StatusSummary{
		Items:             len(products),
		LowStockThreshold: threshold,
		Uptime:            time.Since(s.startedAt),
	}
	for _, p := range products {
		summary.TotalQuantity += p.Quantity
		if p.Quantity == 0 {
			summary.OutOfStockItems++
		}
		if p.Quantity <= threshold {
			summary.LowStockItems++
		}
	}
	return summary
}

func formatProductID(id int64) string {
	return strconv.FormatInt(id, 10)
}
