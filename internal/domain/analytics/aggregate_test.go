package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
)

func order(customer string, at time.Time, lines ...entity.LineItem) entity.OrderRecord {
	return entity.OrderRecord{CustomerName: customer, Date: at, Items: lines}
}

func line(name string, qty int) entity.LineItem {
	return entity.LineItem{ProductName: name, Quantity: qty}
}

func TestDateWindow(t *testing.T) {
	w := NewDateWindow(date(2024, 3, 3).Add(15*time.Hour), 2)

	assert.Equal(t, []time.Time{date(2024, 3, 1), date(2024, 3, 2), date(2024, 3, 3)}, w.Days())
	assert.True(t, w.Contains(date(2024, 3, 3).Add(23*time.Hour)))
	assert.False(t, w.Contains(date(2024, 2, 29)))
	assert.False(t, w.Contains(time.Time{}))
	assert.NotNil(t, DateWindow{}.Days())
}

func TestOrderTrends(t *testing.T) {
	w := DateWindow{Start: date(2024, 3, 1), End: date(2024, 3, 3)}
	orders := []entity.OrderRecord{
		order("Ann", date(2024, 3, 1).Add(9*time.Hour)),
		order("Ben", date(2024, 3, 1).Add(17*time.Hour)),
		order("Ann", date(2024, 3, 3)),
		order("Cat", date(2024, 3, 4)),
		order("Dan", time.Time{}),
	}

	got := OrderTrends(orders, w)

	assert.Equal(t, []string{"Mar 1", "Mar 2", "Mar 3"}, got.Dates)
	assert.Equal(t, []int{2, 0, 1}, got.Counts)
}

func TestOrderTrends_EmptyIsTyped(t *testing.T) {
	got := OrderTrends(nil, DateWindow{})

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dates":[],"counts":[]}`, string(raw))
}

func TestFrequentCustomers(t *testing.T) {
	now := date(2024, 3, 1)
	orders := []entity.OrderRecord{
		order("Bob", now),
		order("Alice", now),
		order("Bob", now),
		order("Alice", now),
		order("", now),
		order("Carol", now),
	}

	got := FrequentCustomers(orders, LeaderboardSize)

	assert.Equal(t, []string{"Bob", "Alice", "Unknown", "Carol"}, got.Names)
	assert.Equal(t, []int{2, 2, 1, 1}, got.Counts)
	for i := 0; i < 5; i++ {
		assert.Equal(t, got, FrequentCustomers(orders, LeaderboardSize))
	}
}

func TestFrequentCustomers_Limit(t *testing.T) {
	orders := make([]entity.OrderRecord, 0, 15)
	for i := 0; i < 15; i++ {
		orders = append(orders, order(fmt.Sprintf("c%02d", i), date(2024, 1, 1)))
	}

	got := FrequentCustomers(orders, LeaderboardSize)

	assert.Len(t, got.Names, LeaderboardSize)
	assert.Equal(t, "c00", got.Names[0])
	assert.Equal(t, "c09", got.Names[9])
}

func TestTopSpenders(t *testing.T) {
	now := date(2024, 3, 1)
	orders := []entity.OrderRecord{
		order("Ann", now, line("Mug", 2), line("Lamp", 1)),
		order("Ben", now, line("Mug", 5)),
		order("Ann", now, line("Mug", 2)),
		order("Cat", now, line("Mug", 1), line("", 9), line("Bad", -4)),
	}

	got := TopSpenders(orders, LeaderboardSize)

	assert.Equal(t, []string{"Ann", "Ben", "Cat"}, got.Names)
	assert.Equal(t, []int64{500, 500, 100}, got.Amounts)
	assert.Equal(t, got, TopSpenders(orders, LeaderboardSize))
}

func TestRevenuePerDay(t *testing.T) {
	inventory := []entity.InventoryRecord{
		{ProductName: "Widget", UnitPrice: 20},
		{ProductName: "Freebie", UnitPrice: 0},
	}
	prices := NewPriceBook(inventory, 0)
	w := DateWindow{Start: date(2024, 3, 1), End: date(2024, 3, 2)}
	orders := []entity.OrderRecord{
		order("Ann", date(2024, 3, 1), line("Widget", 2), line("Gadget", 1)),
		order("Ben", date(2024, 3, 2), line("Freebie", 1), line("Widget", 1)),
		order("Cat", date(2024, 2, 1), line("Outside", 1)),
	}

	got := RevenuePerDay(orders, prices, w)

	assert.Equal(t, []string{"Mar 1", "Mar 2"}, got.Dates)
	assert.Equal(t, []int64{90, 70}, got.Revenues)
	assert.Equal(t, DataQuality{UnmatchedProducts: 1, UnmatchedNames: []string{"Gadget"}}, prices.Quality())
}

func TestProductSalesChart(t *testing.T) {
	orders := make([]entity.OrderRecord, 0, 12)
	for i := 1; i <= 12; i++ {
		orders = append(orders, order("Ann", date(2024, 1, i), line(fmt.Sprintf("p%02d", i), i)))
	}
	orders = append(orders, order("Ann", date(2024, 1, 20), line("An extremely long product name", 100)))
	prices := NewPriceBook([]entity.InventoryRecord{{ProductName: "p12", UnitPrice: 2}}, 0)

	got := ProductSalesChart(BuildSalesIndex(orders), prices)

	require.Len(t, got.Labels, 15)
	assert.Equal(t, "An extremely long...", got.Labels[0])
	assert.Equal(t, "p12", got.Labels[1])
	assert.Equal(t, []string{"p01", "p02", "p03", "p04", "p05"}, got.Labels[10:])

	require.Len(t, got.Datasets, 2)
	assert.Equal(t, "Units Sold", got.Datasets[0].Label)
	assert.Equal(t, 100.0, got.Datasets[0].Data[0])
	assert.Equal(t, 24.0, got.Datasets[1].Data[1])
	assert.Equal(t, 5000.0, got.Datasets[1].Data[0])

	assert.Len(t, got.BestSellers, 10)
	assert.Equal(t, NamedQuantity{Name: "p01", Quantity: 1}, got.WorstSellers[0])
}

func TestProductSalesChart_Empty(t *testing.T) {
	got := ProductSalesChart(BuildSalesIndex(nil), NewPriceBook(nil, 0))

	assert.NotNil(t, got.Labels)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.BestSellers)
	assert.Empty(t, got.WorstSellers)
}

func TestChartLabel(t *testing.T) {
	assert.Equal(t, "Short", ChartLabel("Short"))
	assert.Equal(t, "exactly twenty char", ChartLabel("exactly twenty char"))
	assert.Equal(t, "abcdefghijklmnopq...", ChartLabel("abcdefghijklmnopqrstu"))
}

func TestBuildSalesIndex(t *testing.T) {
	orders := []entity.OrderRecord{
		order("Ann", date(2024, 1, 1), line("Mug", 2), line("", 3), line("Mug", -1)),
		order("Ben", date(2024, 2, 1), line("Mug", 1)),
		order("Cat", time.Time{}, line("Mug", 4)),
	}

	idx := BuildSalesIndex(orders)

	require.Contains(t, idx, "Mug")
	mug := idx["Mug"]
	assert.Equal(t, 7, mug.TotalSold)
	assert.Equal(t, 3, mug.OrderCount)
	assert.Equal(t, date(2024, 2, 1), mug.LastSaleDate)
	assert.Len(t, mug.History, 2)
	assert.NotNil(t, idx.History("Missing"))
}

func TestPriceBook(t *testing.T) {
	book := NewPriceBook([]entity.InventoryRecord{
		{ProductName: "Mug", UnitPrice: 10},
		{ProductName: "Mug", UnitPrice: 12},
		{ProductName: "Broken", UnitPrice: -5},
	}, 0)

	assert.Equal(t, 12.0, book.Price("Mug"))
	assert.Equal(t, DefaultUnitPrice, book.Price("Broken"))
	assert.Equal(t, DefaultUnitPrice, book.Price("Zeta"))
	assert.Equal(t, DefaultUnitPrice, book.Price("Alpha"))
	assert.Equal(t, []string{"Alpha", "Zeta"}, book.Unmatched())

	custom := NewPriceBook(nil, 75)
	assert.Equal(t, 75.0, custom.Price("anything"))
}
