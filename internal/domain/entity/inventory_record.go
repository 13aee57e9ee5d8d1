package entity

import "github.com/sangkips/flowpilot-api/internal/domain/enum"

// InventoryRecord is the canonical shape of a stocked product.
// ProductName is the join key against order line items (exact string match).
type InventoryRecord struct {
	ID                string  `json:"id"`
	ProductName       string  `json:"productName"`
	Category          string  `json:"category"`
	CurrentStock      int     `json:"currentStock"`
	UnitPrice         float64 `json:"unitPrice"`
	WarehouseLocation string  `json:"warehouseLocation"`
	StockAlertLevel   int     `json:"stockAlertLevel"`

	// Optional supplier data used by restock forecasting; zero means unknown.
	SupplierLeadTimeDays int                 `json:"supplierLeadTimeDays,omitempty"`
	SupplierReliability  float64             `json:"supplierReliability,omitempty"`
	LifecycleStage       enum.LifecycleStage `json:"lifecycleStage,omitempty"`
}

// StockValue is current stock valued at the unit price
func (i InventoryRecord) StockValue() float64 {
	if i.CurrentStock <= 0 || i.UnitPrice <= 0 {
		return 0
	}
	return float64(i.CurrentStock) * i.UnitPrice
}

// LowStock reports whether stock is at or below the alert level
func (i InventoryRecord) LowStock() bool {
	return i.CurrentStock <= i.StockAlertLevel
}

// InventoryFilter narrows an inventory listing
type InventoryFilter struct {
	Category          string
	WarehouseLocation string
}

// Matches reports whether the record passes the filter
func (f InventoryFilter) Matches(item InventoryRecord) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.WarehouseLocation != "" && item.WarehouseLocation != f.WarehouseLocation {
		return false
	}
	return true
}

// PriceChange is the result of a price adjustment
type PriceChange struct {
	ProductID          string  `json:"id"`
	Product            string  `json:"product"`
	OldPrice           float64 `json:"oldPrice"`
	NewPrice           float64 `json:"newPrice"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent string  `json:"priceChangePercent"`
}
