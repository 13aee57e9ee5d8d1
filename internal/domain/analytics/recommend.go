package analytics

import (
	"fmt"
	"sort"
	"strings"
)

const (
	worstCategoryCount       = 3
	optimisationImpactCutoff = 100000
)

// Recommendations are the action lists attached to a deadstock report
type Recommendations struct {
	ImmediateActions     []string `json:"immediate_actions"`
	ShortTermStrategies  []string `json:"short_term_strategies"`
	LongTermImprovements []string `json:"long_term_improvements"`
}

// BuildRecommendations derives the action lists from the summary, the
// category breakdown and the ABC buckets. An empty report yields empty lists.
func BuildRecommendations(summary ExecutiveSummary, categories map[string]CategoryBreakdown, abc ABCBuckets) Recommendations {
	rec := Recommendations{
		ImmediateActions:     []string{},
		ShortTermStrategies:  []string{},
		LongTermImprovements: []string{},
	}
	if summary.TotalItemsAnalyzed == 0 {
		return rec
	}

	if summary.CriticalItems > 0 {
		rec.ImmediateActions = append(rec.ImmediateActions,
			fmt.Sprintf("URGENT: %d critical deadstock items require immediate liquidation", summary.CriticalItems),
			"Implement emergency clearance sales with 40-60% discounts",
			"Contact bulk buyers or liquidation companies",
		)
	}
	if len(abc.A) > 0 {
		rec.ImmediateActions = append(rec.ImmediateActions,
			fmt.Sprintf("Focus on %d high-value (Category A) deadstock items first", len(abc.A)))
	}

	if summary.HighRiskItems > 0 {
		rec.ShortTermStrategies = append(rec.ShortTermStrategies,
			fmt.Sprintf("Address %d high-risk items within 30 days", summary.HighRiskItems),
			"Implement targeted promotional campaigns",
		)
	}
	rec.ShortTermStrategies = append(rec.ShortTermStrategies,
		"Review and adjust reorder points for slow-moving categories",
		"Implement weekly deadstock monitoring reports",
	)
	if worst := worstCategories(categories, worstCategoryCount); len(worst) > 0 {
		rec.ShortTermStrategies = append(rec.ShortTermStrategies,
			"Focus on worst-performing categories: "+strings.Join(worst, ", "))
	}

	rec.LongTermImprovements = append(rec.LongTermImprovements,
		"Implement demand forecasting system to prevent future deadstock",
		"Establish supplier agreements for return/exchange of slow-moving items",
		"Develop seasonal clearance strategies",
		"Implement ABC analysis for purchasing decisions",
		"Consider just-in-time inventory for slow-moving categories",
	)
	if summary.TotalFinancialImpact > optimisationImpactCutoff {
		rec.LongTermImprovements = append(rec.LongTermImprovements,
			"Consider implementing inventory optimization software")
	}
	return rec
}

// worstCategories returns the categories holding the most stock value
func worstCategories(categories map[string]CategoryBreakdown, limit int) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := categories[names[i]], categories[names[j]]
		if a.TotalValue != b.TotalValue {
			return a.TotalValue > b.TotalValue
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
