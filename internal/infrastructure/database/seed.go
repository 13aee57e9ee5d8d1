package database

import (
	"fmt"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoInventory is the catalogue seeded into an empty inventory table
func DemoInventory() []entity.InventoryItem {
	return []entity.InventoryItem{
		{ProductName: "Wireless Mouse", Category: "Electronics", CurrentStock: 120, UnitPrice: 149900, WarehouseLocation: "WH-A", StockAlertLevel: 20, SupplierLeadTimeDays: 5, SupplierReliability: 0.95, LifecycleStage: "maturity"},
		{ProductName: "USB-C Hub", Category: "Electronics", CurrentStock: 45, UnitPrice: 299900, WarehouseLocation: "WH-A", StockAlertLevel: 10, SupplierLeadTimeDays: 10, SupplierReliability: 0.85, LifecycleStage: "growth"},
		{ProductName: "Cotton T-Shirt", Category: "Clothing", CurrentStock: 300, UnitPrice: 49900, WarehouseLocation: "WH-B", StockAlertLevel: 50, SupplierLeadTimeDays: 14, SupplierReliability: 0.9, LifecycleStage: "maturity"},
		{ProductName: "Winter Jacket", Category: "Clothing", CurrentStock: 80, UnitPrice: 549900, WarehouseLocation: "WH-B", StockAlertLevel: 10, SupplierLeadTimeDays: 21, SupplierReliability: 0.8, LifecycleStage: "decline"},
		{ProductName: "Ceramic Mug", Category: "Home", CurrentStock: 15, UnitPrice: 29900, WarehouseLocation: "WH-C", StockAlertLevel: 25, SupplierLeadTimeDays: 7, SupplierReliability: 0.92, LifecycleStage: "new"},
		{ProductName: "Desk Lamp", Category: "Home", CurrentStock: 60, UnitPrice: 189900, WarehouseLocation: "WH-C", StockAlertLevel: 8, SupplierLeadTimeDays: 9, SupplierReliability: 0.88, LifecycleStage: "maturity"},
	}
}

// DemoOrders generates a small order history ending at now. Desk Lamp is never sold.
func DemoOrders(now time.Time) []entity.Order {
	customers := []struct{ name, email string }{
		{"Asha Patel", "asha@example.com"},
		{"Brian Otieno", "brian@example.com"},
		{"Chen Wei", "chen@example.com"},
		{"Dana Kim", "dana@example.com"},
	}
	products := []string{"Wireless Mouse", "USB-C Hub", "Cotton T-Shirt", "Ceramic Mug", "Winter Jacket"}

	var orders []entity.Order
	for d := 0; d < 60; d += 2 {
		day := now.AddDate(0, 0, -d)
		c := customers[d%len(customers)]
		status := "fulfilled"
		if d < 6 {
			status = "pending fulfillment"
		}
		lines := []entity.OrderLine{{ProductName: products[(d/2)%4], Quantity: 1 + d%3}}
		if d%10 == 0 {
			lines = append(lines, entity.OrderLine{ProductName: products[4], Quantity: 1})
		}
		orders = append(orders, entity.Order{
			OrderDate:     &day,
			CustomerName:  c.name,
			CustomerEmail: c.email,
			OrderStatus:   status,
			Lines:         lines,
		})
	}
	return orders
}

// SeedDemoData fills empty order and inventory tables with demo data
func SeedDemoData(db *gorm.DB, now time.Time, log *zap.Logger) error {
	log.Info("Seeding demo data")

	var count int64
	if err := db.Model(&entity.InventoryItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count inventory: %w", err)
	}
	if count == 0 {
		items := DemoInventory()
		if err := db.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to seed inventory: %w", err)
		}
	} else {
		log.Info("Inventory already present, skipping", zap.Int64("items", count))
	}

	if err := db.Model(&entity.Order{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}
	if count == 0 {
		orders := DemoOrders(now)
		if err := db.Create(&orders).Error; err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}
	} else {
		log.Info("Orders already present, skipping", zap.Int64("orders", count))
	}

	log.Info("Demo data seeding completed")
	return nil
}
