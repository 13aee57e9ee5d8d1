package repository

import (
	"testing"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=test dbname=test sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestInventoryFilterScope(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name     string
		filter   entity.InventoryFilter
		contains []string
		excludes []string
	}{
		{"empty filter", entity.InventoryFilter{}, nil, []string{"category =", "warehouse_location ="}},
		{"category", entity.InventoryFilter{Category: "Lighting"}, []string{"category = 'Lighting'"}, []string{"warehouse_location ="}},
		{"both", entity.InventoryFilter{Category: "Lighting", WarehouseLocation: "A1"}, []string{"category = 'Lighting'", "warehouse_location = 'A1'"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var items []entity.InventoryItem
				return tx.Scopes(InventoryFilterScope(tt.filter)).Find(&items)
			})
			assert.Contains(t, sql, `"inventory_items"`)
			for _, s := range tt.contains {
				assert.Contains(t, sql, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, sql, s)
			}
		})
	}
}
