// Package domain defines the core domain models for stockd.
package domain

import "testing"

func TestProduct_Valid(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{name: "valid product", product: Product{ID: 1, Quantity: 10}, want: true},
		{name: "zero quantity is valid", product: Product{ID: 2, Quantity: 0}, want: true},
		{name: "zero id", product: Product{ID: 0, Quantity: 5}, want: false},
		{name: "negative id", product: Product{ID: -3, Quantity: 5}, want: false},
		{name: "negative quantity", product: Product{ID: 1, Quantity: -1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.product.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()

	if len(inv) != 12 {
		t.Fatalf("DefaultInventory() returned %d items, want 12", len(inv))
	}

	seen := make(map[int64]bool)
	var total int64
	for _, p := range inv {
		if !p.Valid() {
			t.Errorf("default product %+v is not valid", p)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %d in default inventory", p.ID)
		}
		seen[p.ID] = true
		total += p.Quantity
	}

	if total != 790 {
		t.Errorf("total default quantity = %d, want 790", total)
	}

	// Callers own the slice: mutating one copy must not leak into the next.
	inv[0].Quantity = 0
	if again := DefaultInventory(); again[0].Quantity != 100 {
		t.Error("DefaultInventory() must return a fresh slice on every call")
	}
}
