package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

func TestSampleStdDev(t *testing.T) {
	assert.Zero(t, SampleStdDev(nil))
	assert.Zero(t, SampleStdDev([]float64{4}))
	assert.InDelta(t, 2.1381, SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-4)
}

func TestLinearSlope(t *testing.T) {
	assert.InDelta(t, 1.0, LinearSlope([]float64{0, 1, 2, 3}), 1e-9)
	assert.Zero(t, LinearSlope([]float64{5}))

	assert.Equal(t, enum.TrendIncreasing, SlopeDirection([]float64{0, 1, 2, 3}))
	assert.Equal(t, enum.TrendDecreasing, SlopeDirection([]float64{3, 2, 1, 0}))
	assert.Equal(t, enum.TrendStable, SlopeDirection([]float64{5, 5, 5}))
	assert.Equal(t, enum.TrendStable, SlopeDirection([]float64{0, 0.1, 0.2}))
}

func TestEconomicOrderQuantity(t *testing.T) {
	assert.InDelta(t, 270.185, EconomicOrderQuantity(3650, 50, 0.25, 20), 1e-3)
	assert.Zero(t, EconomicOrderQuantity(0, 50, 0.25, 20))
	assert.Zero(t, EconomicOrderQuantity(3650, 50, 0.25, 0))
}

func TestSeasonalTrendSmoothing(t *testing.T) {
	short := SeasonalTrendSmoothing([]float64{1, 2, 3}, 7, 0.2, 0.1, 0.1)
	assert.Equal(t, []float64{2, 2, 2}, short)

	flat := make([]float64, 21)
	for i := range flat {
		flat[i] = 4
	}
	got := SeasonalTrendSmoothing(flat, 7, 0.2, 0.1, 0.1)
	require.Len(t, got, 21)
	for _, v := range got {
		assert.InDelta(t, 4.0, v, 1e-9)
	}

	assert.Empty(t, SeasonalTrendSmoothing(nil, 7, 0.2, 0.1, 0.1))
}

func TestForecastRestocking(t *testing.T) {
	now := date(2024, 6, 1)
	opts := DefaultForecastOptions(now)

	var orders []entity.OrderRecord
	for _, d := range NewDateWindow(now, opts.WindowDays).Days() {
		orders = append(orders, order("Ann", d, line("Fast Mover", 2)))
	}

	inventory := []entity.InventoryRecord{
		{ProductName: "Idle Stock", CurrentStock: 50, UnitPrice: 10, StockAlertLevel: 5},
		{ProductName: "Fast Mover", CurrentStock: 7, UnitPrice: 10, StockAlertLevel: 4},
		{ProductName: "Empty Shelf", CurrentStock: 0, UnitPrice: 10, StockAlertLevel: 4, LifecycleStage: enum.LifecycleNew},
	}

	got := ForecastRestocking(inventory, orders, opts)

	require.Len(t, got.UrgentRestocking, 2)

	fast := got.UrgentRestocking[0]
	assert.Equal(t, "Fast Mover", fast.Product)
	assert.Equal(t, enum.UrgencyCritical, fast.UrgencyLevel)
	assert.Equal(t, 3, fast.DaysUntilStockout)
	assert.Equal(t, "2024-06-04", fast.ProjectedStockoutDate)
	assert.InDelta(t, 2.0, fast.ExpectedDailyDemand, 1e-9)
	assert.Equal(t, int64(14), fast.ReorderPoint)
	assert.Equal(t, int64(171), fast.EconomicOrderQuantity)
	assert.Equal(t, int64(185), fast.RecommendedStock)
	assert.Equal(t, enum.TrendStable, fast.TrendDirection)
	assert.Contains(t, fast.Reasons, "Stock (7) is below reorder point (14)")
	assert.Contains(t, fast.Reasons, "Projected to stock out in 3 days, which is within the lead time of 7 days.")
	assert.LessOrEqual(t, fast.ConfidenceScore, 1.0)

	empty := got.UrgentRestocking[1]
	assert.Equal(t, "Empty Shelf", empty.Product)
	assert.Equal(t, enum.UrgencyLow, empty.UrgencyLevel)
	assert.Equal(t, NoStockout, empty.DaysUntilStockout)
	assert.Equal(t, "N/A", empty.ProjectedStockoutDate)
	assert.Equal(t, int64(9), empty.RecommendedStock)
	assert.Equal(t, 0.5, empty.ConfidenceScore)

	assert.Equal(t, 3, got.Summary.TotalProductsAnalyzed)
	assert.Equal(t, 1, got.Summary.CriticalItems)
	assert.Equal(t, 1, got.Summary.HighPriorityItems)
	assert.Equal(t, "2024-06-01T00:00:00.000Z", got.GeneratedAt)
	assert.Equal(t, "2024-06-02T00:00:00.000Z", got.NextAnalysisRecommended)
}

func TestForecastRestocking_Empty(t *testing.T) {
	got := ForecastRestocking(nil, nil, DefaultForecastOptions(date(2024, 6, 1)))

	assert.NotNil(t, got.UrgentRestocking)
	assert.Empty(t, got.UrgentRestocking)
	assert.Zero(t, got.Summary.AverageConfidenceScore)
}
