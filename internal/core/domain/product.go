// Package domain defines the core domain models for stockd.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling.
package domain

// Product represents one stocked item.
//
// @req RQ-0101
// @design DS-0101
type Product struct {
	// ID is the unique, positive product identifier.
	ID int64 `json:"id"`

	// Quantity is the current stock level. Never negative.
	Quantity int64 `json:"quantity"`
}

// Valid reports whether the product satisfies the shape constraints:
// a positive id and a non-negative quantity.
func (p Product) Valid() bool {
	return p.ID > 0 && p.Quantity >= 0
}

// DefaultInventory returns the fixed seed set used when the persisted
// inventory file is missing or unusable. Callers own the returned slice.
func DefaultInventory() []Product {
	return []Product{
		{ID: 1, Quantity: 100},
		{ID: 2, Quantity: 50},
		{ID: 3, Quantity: 75},
		{ID: 4, Quantity: 120},
		{ID: 5, Quantity: 30},
		{ID: 6, Quantity: 60},
		{ID: 7, Quantity: 40},
		{ID: 8, Quantity: 90},
		{ID: 9, Quantity: 80},
		{ID: 10, Quantity: 70},
		{ID: 11, Quantity: 20},
		{ID: 12, Quantity: 55},
	}
}
