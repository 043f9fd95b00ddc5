package benchmark

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockd/stockd/internal/storage/filestore"
)

// BenchmarkStoreLoad benchmarks reading and validating the persisted
// inventory file at various sizes.
func BenchmarkStoreLoad(b *testing.B) {
	counts := SmallProductCounts // Use small counts for CI; change to ProductCounts for full test

	runWithProductCounts(b, counts, func(b *testing.B, count int) {
		ctx := context.Background()
		path := filepath.Join(b.TempDir(), "inventory.json")

		data, err := json.Marshal(seedInventory(count))
		if err != nil {
			b.Fatalf("marshal inventory: %v", err)
		}
		if err := os.WriteFile(path, data, 0640); err != nil {
			b.Fatalf("write inventory: %v", err)
		}

		store := filestore.New(path)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			res, err := store.Load(ctx)
			if err != nil {
				b.Fatalf("Load failed: %v", err)
			}
			if res.Seeded() {
				b.Fatalf("unexpected seeding: %v", res.Reason)
			}
		}

		b.StopTimer()
		reportMemory(b, "mem")
	})
}

// BenchmarkStoreGet benchmarks point lookups at various inventory sizes.
// The store scans the ordered sequence, so this grows with the inventory.
func BenchmarkStoreGet(b *testing.B) {
	runWithProductCounts(b, SmallProductCounts, func(b *testing.B, count int) {
		ctx := context.Background()
		store := newBenchStore(b, seedInventory(count))

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			id := int64(i%count + 1)
			if _, err := store.Get(ctx, id); err != nil {
				b.Fatalf("Get failed: %v", err)
			}
		}
	})
}

// BenchmarkStoreSnapshot benchmarks the full inventory copy backing the
// list endpoint.
func BenchmarkStoreSnapshot(b *testing.B) {
	runWithProductCounts(b, SmallProductCounts, func(b *testing.B, count int) {
		ctx := context.Background()
		store := newBenchStore(b, seedInventory(count))

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if snap := store.Snapshot(ctx); len(snap) != count {
				b.Fatalf("Snapshot returned %d products, want %d", len(snap), count)
			}
		}
	})
}

// BenchmarkStoreDecrement benchmarks a full order write: the decrement
// plus the atomic persist of the complete sequence. Dominated by the
// fsync, and grows with the inventory because the whole file is
// rewritten on every order.
func BenchmarkStoreDecrement(b *testing.B) {
	runWithProductCounts(b, SmallProductCounts, func(b *testing.B, count int) {
		ctx := context.Background()

		products := seedInventory(count)
		// Enough stock on the ordered product for every iteration.
		products[0].Quantity = int64(1) << 40
		store := newBenchStore(b, products)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if _, err := store.DecrementOrder(ctx, products[0].ID); err != nil {
				b.Fatalf("DecrementOrder failed: %v", err)
			}
		}

		b.StopTimer()
		reportMemory(b, "mem")
	})
}

// BenchmarkStoreConcurrent benchmarks mixed reads competing with the
// write lock held across persisting orders.
func BenchmarkStoreConcurrent(b *testing.B) {
	ctx := context.Background()

	products := seedInventory(10000)
	products[0].Quantity = int64(1) << 40
	store := newBenchStore(b, products)

	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			switch i % 8 {
			case 0: // order: decrement + persist
				if _, err := store.DecrementOrder(ctx, products[0].ID); err != nil {
					b.Errorf("DecrementOrder failed: %v", err)
				}
			case 1: // full listing
				store.Snapshot(ctx)
			default: // point lookup
				store.Get(ctx, int64(i%len(products)+1))
			}
			i++
		}
	})
}
