package service

import (
	"sort"

	"github.com/sangkips/flowpilot-api/internal/domain/analytics"
	"github.com/sangkips/flowpilot-api/pkg/export"
)

// DeadstockSheets lays the report out as summary, items, categories and recommendations worksheets
func DeadstockSheets(r *analytics.DeadstockReport) []export.Sheet {
	s := r.ExecutiveSummary
	summary := export.Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"Report date", s.ReportDate},
			{"Items analysed", s.TotalItemsAnalyzed},
			{"Deadstock value", s.TotalDeadstockValue},
			{"Critical items", s.CriticalItems},
			{"High risk items", s.HighRiskItems},
			{"Medium risk items", s.MediumRiskItems},
			{"Low risk items", s.LowRiskItems},
			{"Priority actions required", s.PriorityActionsRequired},
			{"Tied up capital", s.FinancialBreakdown.TiedUpCapital},
			{"Storage costs", s.FinancialBreakdown.StorageCosts},
			{"Opportunity cost", s.FinancialBreakdown.OpportunityCost},
			{"Depreciation risk", s.FinancialBreakdown.DepreciationRisk},
			{"Total financial impact", s.TotalFinancialImpact},
			{"Unmatched products", r.DataQuality.UnmatchedProducts},
		},
	}

	items := export.Sheet{
		Name: "Items",
		Headers: []string{
			"Product", "Category", "Warehouse", "Stock", "Alert Level", "Price", "Stock Value",
			"Age (days)", "Velocity", "Turnover", "Trend", "ABC", "Priority", "Risk", "Total Impact",
		},
	}
	for _, it := range r.RiskAnalysis.Items() {
		items.Rows = append(items.Rows, []interface{}{
			it.ProductName, it.Category, it.WarehouseLocation, it.CurrentStock, it.StockAlertLevel,
			it.Price, it.StockValue, it.Metrics.AgeScore, it.Metrics.VelocityScore, it.Metrics.TurnoverRatio,
			string(it.Metrics.DemandTrend), string(it.ABCAnalysis.Category), string(it.ABCAnalysis.Priority),
			it.RiskLevel.String(), it.FinancialImpact.TotalImpact,
		})
	}

	categories := export.Sheet{
		Name:    "Categories",
		Headers: []string{"Category", "Items", "Total Value", "Avg Age (days)", "Velocity"},
	}
	names := make([]string, 0, len(r.CategoryBreakdown))
	for name := range r.CategoryBreakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := r.CategoryBreakdown[name]
		categories.Rows = append(categories.Rows, []interface{}{name, c.ItemCount, c.TotalValue, c.AvgAgeDays, c.VelocityScore})
	}

	recs := export.Sheet{Name: "Recommendations", Headers: []string{"Horizon", "Action"}}
	add := func(horizon string, actions []string) {
		for _, a := range actions {
			recs.Rows = append(recs.Rows, []interface{}{horizon, a})
		}
	}
	add("Immediate", r.Recommendations.ImmediateActions)
	add("Short term", r.Recommendations.ShortTermStrategies)
	add("Long term", r.Recommendations.LongTermImprovements)

	return []export.Sheet{summary, items, categories, recs}
}
