package analytics

import (
	"sort"

	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

// ABCAnalysis is the value-based prioritisation of a deadstock item
type ABCAnalysis struct {
	Category enum.ABCCategory `json:"category"`
	Priority enum.Priority    `json:"priority"`
	Reason   string           `json:"reason"`
}

// PerformABCAnalysis classifies an item by stock value, velocity and age.
// The A rule is evaluated before the B rules.
func PerformABCAnalysis(stockValue, velocityScore float64, ageScore int) ABCAnalysis {
	if stockValue > 50000 && velocityScore < 5 && ageScore > 60 {
		return ABCAnalysis{
			Category: enum.ABCCategoryA,
			Priority: enum.PriorityHigh,
			Reason:   "High-value deadstock with low movement - immediate attention required",
		}
	}

	if (stockValue > 10000 && velocityScore < 10 && ageScore > 30) ||
		(stockValue > 25000 && ageScore > 45) {
		return ABCAnalysis{
			Category: enum.ABCCategoryB,
			Priority: enum.PriorityMedium,
			Reason:   "Medium-value deadstock - monitor and implement promotional strategies",
		}
	}

	return ABCAnalysis{
		Category: enum.ABCCategoryC,
		Priority: enum.PriorityLow,
		Reason:   "Low-value or recent deadstock - regular monitoring sufficient",
	}
}

// DetermineRiskLevel maps movement metrics and stock position to a risk tier.
// Each clause only gets easier to satisfy as age and stock grow or velocity
// and turnover fall, so a worse item never lands in a lower tier.
func DetermineRiskLevel(m DeadstockMetrics, currentStock, stockAlertLevel int) enum.RiskLevel {
	age := m.AgeScore
	vel := m.VelocityScore
	turnover := m.TurnoverRatio

	switch {
	case (age >= 120 && vel < 1) ||
		(turnover < 0.5 && age >= 90) ||
		(currentStock > stockAlertLevel*5 && vel < 2):
		return enum.RiskLevelCritical

	case (age >= 60 && vel < 3) ||
		(turnover < 1 && age >= 45) ||
		(currentStock > stockAlertLevel*3 && vel < 5):
		return enum.RiskLevelHigh

	case (age >= 30 && vel < 5) ||
		(turnover < 2 && age >= 30):
		return enum.RiskLevelMedium
	}
	return enum.RiskLevelLow
}

// SortByRisk orders items by risk priority (critical first), then by stock
// value descending, then by product name for a total order.
func SortByRisk(items []EnhancedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.RiskLevel.Priority() != b.RiskLevel.Priority() {
			return a.RiskLevel.Priority() > b.RiskLevel.Priority()
		}
		if a.StockValue != b.StockValue {
			return a.StockValue > b.StockValue
		}
		return a.ProductName < b.ProductName
	})
}
