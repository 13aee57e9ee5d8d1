package analytics

import (
	"sort"
	"sync"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
)

// DefaultUnitPrice is the price assumed for a product with no usable inventory
// price. It is a placeholder, so revenue built on it is an approximation.
const DefaultUnitPrice = 50.0

// PriceBook resolves order line product names to inventory unit prices by
// exact name match. Names that cannot be resolved are remembered so the
// caller can surface them as a data quality signal.
type PriceBook struct {
	prices   map[string]float64
	fallback float64

	mu        sync.Mutex
	unmatched map[string]struct{}
}

// NewPriceBook indexes the inventory by product name. When a name repeats,
// the last record wins. A fallback <= 0 selects DefaultUnitPrice.
func NewPriceBook(inventory []entity.InventoryRecord, fallback float64) *PriceBook {
	if fallback <= 0 {
		fallback = DefaultUnitPrice
	}
	prices := make(map[string]float64, len(inventory))
	for _, item := range inventory {
		prices[item.ProductName] = item.UnitPrice
	}
	return &PriceBook{
		prices:    prices,
		fallback:  fallback,
		unmatched: make(map[string]struct{}),
	}
}

// Price returns the unit price for a product. Missing names and zero or
// negative prices resolve to the fallback price.
func (b *PriceBook) Price(productName string) float64 {
	price, ok := b.prices[productName]
	if !ok {
		b.mu.Lock()
		b.unmatched[productName] = struct{}{}
		b.mu.Unlock()
		return b.fallback
	}
	if price <= 0 {
		return b.fallback
	}
	return price
}

// Fallback returns the price used for unresolved products
func (b *PriceBook) Fallback() float64 {
	return b.fallback
}

// Unmatched returns the sorted names seen by Price that had no inventory record
func (b *PriceBook) Unmatched() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.unmatched))
	for name := range b.unmatched {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DataQuality reports how well order lines joined against the inventory
type DataQuality struct {
	UnmatchedProducts int      `json:"unmatchedProducts"`
	UnmatchedNames    []string `json:"unmatchedNames"`
}

// Quality snapshots the unmatched names seen so far
func (b *PriceBook) Quality() DataQuality {
	names := b.Unmatched()
	return DataQuality{UnmatchedProducts: len(names), UnmatchedNames: names}
}
