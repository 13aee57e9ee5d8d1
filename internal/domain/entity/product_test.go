package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestPriceCents(t *testing.T) {
	assert.Equal(t, int64(1999), PriceToCents(19.99))
	assert.Equal(t, int64(5000), PriceToCents(50))
	assert.Equal(t, int64(1), PriceToCents(0.005))
	assert.Equal(t, 19.99, CentsToPrice(1999))
	assert.Equal(t, 0.0, CentsToPrice(0))
}

func TestInventoryItem_ToRecord(t *testing.T) {
	id := uuid.New()
	item := InventoryItem{
		ID:                id,
		ProductName:       "Desk Lamp",
		Category:          "Lighting",
		CurrentStock:      12,
		UnitPrice:         4550,
		WarehouseLocation: "A1",
		StockAlertLevel:   3,
		LifecycleStage:    "growth",
	}

	rec := item.ToRecord()
	assert.Equal(t, id.String(), rec.ID)
	assert.Equal(t, 45.5, rec.UnitPrice)
	assert.Equal(t, enum.LifecycleGrowth, rec.LifecycleStage)
	assert.Equal(t, 546.0, rec.StockValue())
}

func TestInventoryItem_Apply(t *testing.T) {
	id := uuid.New()
	item := InventoryItem{ID: id, ProductName: "Old", UnitPrice: 100}

	item.Apply(InventoryRecord{
		ID:             "ignored",
		ProductName:    "Desk Lamp",
		Category:       "Lighting",
		CurrentStock:   8,
		UnitPrice:      19.995,
		LifecycleStage: enum.LifecycleMaturity,
	})

	assert.Equal(t, id, item.ID)
	assert.Equal(t, "Desk Lamp", item.ProductName)
	assert.Equal(t, int64(2000), item.UnitPrice)
	assert.Equal(t, "maturity", item.LifecycleStage)
	assert.Equal(t, 8, item.CurrentStock)
}

func TestOrder_ToRecord(t *testing.T) {
	day := time.Date(2024, 3, 5, 14, 30, 0, 0, time.FixedZone("EAT", 3*3600))
	o := Order{
		OrderDate:    &day,
		CustomerName: "Ada",
		OrderStatus:  "Fulfilled",
		Lines:        []OrderLine{{ProductName: "Desk Lamp", Quantity: 2}},
	}

	rec := o.ToRecord()
	assert.True(t, rec.HasDate())
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rec.Day())
	assert.Equal(t, enum.OrderStatusFulfilled, rec.Status)
	assert.Equal(t, 2, rec.TotalQuantity())

	undated := Order{}
	assert.False(t, undated.ToRecord().HasDate())
	assert.NotNil(t, undated.ToRecord().Items)
}
