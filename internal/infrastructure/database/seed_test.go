package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoData(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	names := make(map[string]bool)
	for _, item := range DemoInventory() {
		names[item.ProductName] = true
		assert.Positive(t, item.UnitPrice, item.ProductName)
	}

	orders := DemoOrders(now)
	require.Len(t, orders, 30)

	sold := make(map[string]bool)
	for _, o := range orders {
		require.NotNil(t, o.OrderDate)
		assert.False(t, o.OrderDate.After(now))
		rec := o.ToRecord()
		for _, line := range rec.Items {
			assert.True(t, names[line.ProductName], "unknown product %q", line.ProductName)
			sold[line.ProductName] = true
		}
	}
	assert.False(t, sold["Desk Lamp"])
	for _, name := range []string{"Wireless Mouse", "USB-C Hub", "Cotton T-Shirt", "Ceramic Mug", "Winter Jacket"} {
		assert.True(t, sold[name], name)
	}
}
