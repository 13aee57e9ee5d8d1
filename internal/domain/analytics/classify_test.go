package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

func TestPerformABCAnalysis(t *testing.T) {
	tests := []struct {
		name         string
		value        float64
		velocity     float64
		age          int
		wantCategory enum.ABCCategory
		wantPriority enum.Priority
	}{
		{"high value stale", 60000, 3, 70, enum.ABCCategoryA, enum.PriorityHigh},
		{"low value recent", 5000, 20, 5, enum.ABCCategoryC, enum.PriorityLow},
		{"medium value slow", 20000, 5, 40, enum.ABCCategoryB, enum.PriorityMedium},
		{"large value aged but fast", 30000, 50, 50, enum.ABCCategoryB, enum.PriorityMedium},
		{"value at A boundary falls to B", 50000, 3, 70, enum.ABCCategoryB, enum.PriorityMedium},
		{"high value but fast", 60000, 5, 70, enum.ABCCategoryB, enum.PriorityMedium},
		{"high value but recent", 60000, 1, 20, enum.ABCCategoryC, enum.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerformABCAnalysis(tt.value, tt.velocity, tt.age)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantPriority, got.Priority)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestDetermineRiskLevel(t *testing.T) {
	tests := []struct {
		name    string
		metrics DeadstockMetrics
		stock   int
		alert   int
		want    enum.RiskLevel
	}{
		{"never sold", DeadstockMetrics{AgeScore: NeverSoldAge}, 10, 5, enum.RiskLevelCritical},
		{"heavily overstocked and slow", DeadstockMetrics{AgeScore: 5, VelocityScore: 1, TurnoverRatio: 3}, 30, 5, enum.RiskLevelCritical},
		{"aged and slow", DeadstockMetrics{AgeScore: 60, VelocityScore: 2, TurnoverRatio: 3}, 1, 5, enum.RiskLevelHigh},
		{"month old and slowing", DeadstockMetrics{AgeScore: 30, VelocityScore: 4, TurnoverRatio: 3}, 1, 5, enum.RiskLevelMedium},
		{"moving well", DeadstockMetrics{AgeScore: 10, VelocityScore: 10, TurnoverRatio: 5}, 10, 5, enum.RiskLevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineRiskLevel(tt.metrics, tt.stock, tt.alert))
		})
	}
}

func TestDetermineRiskLevel_Monotonic(t *testing.T) {
	type point struct {
		age      int
		velocity float64
		turnover float64
		stock    int
	}

	var grid []point
	for _, age := range []int{0, 30, 45, 60, 90, 120, NeverSoldAge} {
		for _, vel := range []float64{0, 0.5, 1, 2, 3, 5, 10} {
			for _, tr := range []float64{0, 0.4, 0.9, 1.5, 3} {
				for _, stock := range []int{1, 20, 40} {
					grid = append(grid, point{age, vel, tr, stock})
				}
			}
		}
	}

	const alert = 5
	level := func(p point) enum.RiskLevel {
		return DetermineRiskLevel(DeadstockMetrics{AgeScore: p.age, VelocityScore: p.velocity, TurnoverRatio: p.turnover}, p.stock, alert)
	}

	for _, better := range grid {
		for _, worse := range grid {
			if worse.age < better.age || worse.velocity > better.velocity ||
				worse.turnover > better.turnover || worse.stock < better.stock {
				continue
			}
			require.GreaterOrEqual(t, level(worse).Priority(), level(better).Priority(),
				"worse=%+v better=%+v", worse, better)
		}
	}
}

func TestSortByRisk(t *testing.T) {
	items := []EnhancedItem{
		{ProductName: "b", RiskLevel: enum.RiskLevelLow, StockValue: 900},
		{ProductName: "c", RiskLevel: enum.RiskLevelCritical, StockValue: 100},
		{ProductName: "a", RiskLevel: enum.RiskLevelCritical, StockValue: 100},
		{ProductName: "d", RiskLevel: enum.RiskLevelCritical, StockValue: 500},
		{ProductName: "e", RiskLevel: enum.RiskLevelHigh, StockValue: 50},
	}

	SortByRisk(items)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.ProductName)
	}
	assert.Equal(t, []string{"d", "a", "c", "e", "b"}, names)
}
