package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem represents a stocked product in the inventory table
type InventoryItem struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductName          string         `gorm:"size:255;not null;index" json:"product_name"`
	Category             string         `gorm:"size:100;index" json:"category"`
	CurrentStock         int            `gorm:"default:0" json:"current_stock"`
	UnitPrice            int64          `gorm:"default:0" json:"unit_price"` // Stored in cents
	WarehouseLocation    string         `gorm:"size:100;index" json:"warehouse_location"`
	StockAlertLevel      int            `gorm:"default:0" json:"stock_alert_level"`
	SupplierLeadTimeDays int            `gorm:"default:0" json:"supplier_lead_time_days"`
	SupplierReliability  float64        `gorm:"default:0" json:"supplier_reliability"`
	LifecycleStage       string         `gorm:"size:20" json:"lifecycle_stage"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// GetUnitPriceDecimal returns the unit price in currency units
func (i *InventoryItem) GetUnitPriceDecimal() float64 {
	return CentsToPrice(i.UnitPrice)
}

// ToRecord maps the stored item onto the canonical analytics shape
func (i *InventoryItem) ToRecord() InventoryRecord {
	return InventoryRecord{
		ID:                   i.ID.String(),
		ProductName:          i.ProductName,
		Category:             i.Category,
		CurrentStock:         i.CurrentStock,
		UnitPrice:            i.GetUnitPriceDecimal(),
		WarehouseLocation:    i.WarehouseLocation,
		StockAlertLevel:      i.StockAlertLevel,
		SupplierLeadTimeDays: i.SupplierLeadTimeDays,
		SupplierReliability:  i.SupplierReliability,
		LifecycleStage:       enum.LifecycleStage(i.LifecycleStage),
	}
}

// Apply copies the editable fields of a canonical record onto the stored item.
// The ID and timestamps are left alone.
func (i *InventoryItem) Apply(rec InventoryRecord) {
	i.ProductName = rec.ProductName
	i.Category = rec.Category
	i.CurrentStock = rec.CurrentStock
	i.UnitPrice = PriceToCents(rec.UnitPrice)
	i.WarehouseLocation = rec.WarehouseLocation
	i.StockAlertLevel = rec.StockAlertLevel
	i.SupplierLeadTimeDays = rec.SupplierLeadTimeDays
	i.SupplierReliability = rec.SupplierReliability
	i.LifecycleStage = string(rec.LifecycleStage)
}

// PriceToCents converts a currency amount to cents, rounding half away from zero
func PriceToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

// CentsToPrice converts cents to a currency amount
func CentsToPrice(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
