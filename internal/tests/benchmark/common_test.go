package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stockd/stockd/internal/core/domain"
	"github.com/stockd/stockd/internal/storage/filestore"
)

// ProductCounts defines the inventory sizes for benchmarking.
var ProductCounts = []int{1000, 5000, 10000, 50000, 100000}

// SmallProductCounts for quick benchmarks.
var SmallProductCounts = []int{100, 1000, 10000}

// seedInventory builds a product sequence of the given size. Quantities
// cycle through a small range; every tenth product starts out of stock.
func seedInventory(count int) []domain.Product {
	products := make([]domain.Product, count)
	for i := 0; i < count; i++ {
		products[i] = domain.Product{
			ID:       int64(i + 1),
			Quantity: int64((i % 10) * 25),
		}
	}
	return products
}

// newBenchStore creates a store persisting into the benchmark's temp
// directory, seeded and loaded with the given products.
func newBenchStore(b *testing.B, products []domain.Product) *filestore.Store {
	b.Helper()

	path := filepath.Join(b.TempDir(), "inventory.json")
	store := filestore.New(path, filestore.WithDefaultInventory(products))
	if _, err := store.Load(context.Background()); err != nil {
		b.Fatalf("Load failed: %v", err)
	}
	return store
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithProductCounts runs a benchmark function with various inventory sizes.
func runWithProductCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("products_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
