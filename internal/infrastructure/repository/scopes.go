package repository

import (
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"gorm.io/gorm"
)

// InventoryFilterScope returns a GORM scope that narrows inventory by category and warehouse.
// Empty filter fields match everything.
func InventoryFilterScope(filter entity.InventoryFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			db = db.Where("category = ?", filter.Category)
		}
		if filter.WarehouseLocation != "" {
			db = db.Where("warehouse_location = ?", filter.WarehouseLocation)
		}
		return db
	}
}
