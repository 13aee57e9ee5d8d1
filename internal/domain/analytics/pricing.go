package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

const (
	minPriceFactor = 0.7
	maxPriceFactor = 1.25
	priceRounding  = 10
	staleOrderDays = 60
	noOrderDays    = 365
)

var categoryPremiums = map[string]float64{
	"electronics": 2,
	"fashion":     1,
	"home":        0.5,
	"books":       -0.5,
	"toys":        1.5,
	"sports":      1,
	"beauty":      2.5,
	"automotive":  0,
	"food":        -1,
	"health":      3,
}

// CategoryPremium returns the percentage premium applied to stable products of a category
func CategoryPremium(category string) float64 {
	return categoryPremiums[strings.ToLower(category)]
}

// PriceRecommendation is a suggested price for one inventory item
type PriceRecommendation struct {
	ProductID        string        `json:"productId"`
	Product          string        `json:"product"`
	CurrentPrice     float64       `json:"currentPrice"`
	RecommendedPrice float64       `json:"recommendedPrice"`
	Reason           string        `json:"reason"`
	Confidence       int           `json:"confidence"`
	PotentialImpact  string        `json:"potentialImpact"`
	Urgency          enum.Priority `json:"urgency"`
}

// PricingReport holds the sorted recommendations and their summary
type PricingReport struct {
	Recommendations         []PriceRecommendation `json:"pricing_recommendations"`
	AnalysisDate            string                `json:"analysis_date"`
	TotalProductsAnalyzed   int                   `json:"total_products_analyzed"`
	HighPriorityAdjustments int                   `json:"high_priority_adjustments"`
	Summary                 string                `json:"summary"`
}

// RecommendPrices runs the pricing rule cascade for every inventory item.
// Results are ordered by urgency weight times confidence, highest first.
func RecommendPrices(inventory []entity.InventoryRecord, sales SalesIndex, now time.Time) PricingReport {
	recs := make([]PriceRecommendation, 0, len(inventory))
	for _, item := range inventory {
		recs = append(recs, RecommendPrice(item, sales[item.ProductName], now))
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Urgency.Weight()*recs[i].Confidence > recs[j].Urgency.Weight()*recs[j].Confidence
	})

	high := 0
	for _, r := range recs {
		if r.Urgency == enum.PriorityHigh {
			high++
		}
	}
	return PricingReport{
		Recommendations:         recs,
		AnalysisDate:            now.UTC().Format(ReportDateLayout),
		TotalProductsAnalyzed:   len(inventory),
		HighPriorityAdjustments: high,
		Summary:                 PricingSummary(recs),
	}
}

// RecommendPrice applies the first matching rule: critical stock with demand,
// low stock with demand, overstock or stale, high demand, then stable. The
// result is clamped to 70%..125% of the current price and rounded to the
// nearest 10. sales may be nil for a product that never sold.
func RecommendPrice(item entity.InventoryRecord, sales *ProductSalesSummary, now time.Time) PriceRecommendation {
	stock := float64(item.CurrentStock)
	alert := float64(item.StockAlertLevel)
	price := item.UnitPrice

	isLowStock := stock <= alert
	isCriticalStock := stock <= alert*0.5
	isOverstock := stock > alert*3

	demand, avgQty, daysSince := 0.1, 1.0, noOrderDays
	if sales != nil && sales.OrderCount > 0 {
		demand = float64(sales.OrderCount) / 10
		avgQty = float64(sales.TotalSold) / float64(sales.OrderCount)
		if !sales.LastSaleDate.IsZero() {
			daysSince = int(math.Ceil(now.Sub(sales.LastSaleDate).Hours() / 24))
		}
	}

	rec := PriceRecommendation{
		ProductID:    item.ID,
		Product:      item.ProductName,
		CurrentPrice: price,
	}
	recommended := price
	monthly := func(p float64) float64 { return (p - price) * avgQty * demand }

	switch {
	case isCriticalStock && sales != nil && demand > 0.5:
		recommended = price * (1 + math.Min(15, 5+demand*10)/100)
		rec.Reason = fmt.Sprintf("Critical stock level (%d units) with high demand. Price increase to manage demand and improve margins.", item.CurrentStock)
		rec.Confidence = 90
		rec.Urgency = enum.PriorityHigh
		rec.PotentialImpact = fmt.Sprintf("Revenue increase: %s%.0f/month", CurrencySymbol, monthly(recommended))

	case isLowStock && demand > 0.3:
		recommended = price * (1 + math.Min(8, 3+demand*5)/100)
		rec.Reason = "Low stock with steady demand. Moderate price increase to balance supply and demand."
		rec.Confidence = 80
		rec.Urgency = enum.PriorityMedium
		rec.PotentialImpact = fmt.Sprintf("Revenue increase: %s%.0f/month", CurrencySymbol, monthly(recommended))

	case isOverstock || daysSince > staleOrderDays:
		if isOverstock {
			recommended = price * (1 - math.Min(20, 5+math.Log(stock/alert)*5)/100)
			rec.Reason = fmt.Sprintf("Overstocked item (%d vs %d alert level). Price reduction to move inventory.", item.CurrentStock, item.StockAlertLevel)
			rec.Urgency = enum.PriorityHigh
		} else {
			recommended = price * (1 - math.Min(15, float64(daysSince)/10)/100)
			rec.Reason = fmt.Sprintf("No recent orders (%d days). Competitive pricing to stimulate demand.", daysSince)
			rec.Urgency = enum.PriorityMedium
		}
		rec.Confidence = 85
		rec.PotentialImpact = fmt.Sprintf("Inventory turnover improvement, reduced holding costs: %s%.0f saved", CurrencySymbol, stock*(price-recommended)*0.1)

	case demand > 1.0 && stock > alert*1.5:
		recommended = price * (1 + math.Min(5, demand*2)/100)
		rec.Reason = "High demand product with adequate stock. Optimizing price for maximum revenue."
		rec.Confidence = 75
		rec.Urgency = enum.PriorityMedium
		rec.PotentialImpact = fmt.Sprintf("Revenue optimization: %s%.0f/month", CurrencySymbol, monthly(recommended))

	default:
		recommended = price * (1 + CategoryPremium(item.Category)/100)
		rec.Reason = "Stable product. Minor adjustment based on category trends and market positioning."
		rec.Confidence = 60
		rec.Urgency = enum.PriorityLow
		rec.PotentialImpact = fmt.Sprintf("Marginal impact: %s%.0f/month", CurrencySymbol, math.Abs((recommended-price)*avgQty*0.5))
	}

	rec.RecommendedPrice = ClampAndRoundPrice(price, recommended)
	return rec
}

// ClampAndRoundPrice bounds a proposed price to 70%..125% of the current one
// and rounds it to the nearest 10.
func ClampAndRoundPrice(current, proposed float64) float64 {
	cur := decimal.NewFromFloat(current)
	p := decimal.NewFromFloat(proposed)
	lo := cur.Mul(decimal.NewFromFloat(minPriceFactor))
	hi := cur.Mul(decimal.NewFromFloat(maxPriceFactor))
	p = decimal.Max(lo, decimal.Min(hi, p))

	step := decimal.NewFromInt(priceRounding)
	return p.Div(step).Round(0).Mul(step).InexactFloat64()
}

// PricingSummary describes the recommendations in one sentence
func PricingSummary(recs []PriceRecommendation) string {
	if len(recs) == 0 {
		return "No products analysed."
	}
	increases, decreases, high, confidence := 0, 0, 0, 0
	for _, r := range recs {
		switch {
		case r.RecommendedPrice > r.CurrentPrice:
			increases++
		case r.RecommendedPrice < r.CurrentPrice:
			decreases++
		}
		if r.Urgency == enum.PriorityHigh {
			high++
		}
		confidence += r.Confidence
	}
	return fmt.Sprintf("Analysis of %d products: %d price increases, %d price decreases recommended. %d high-priority adjustments identified. Average confidence: %.1f%%",
		len(recs), increases, decreases, high, float64(confidence)/float64(len(recs)))
}

// NewPriceChange describes moving an item from its current price to newPrice.
// A zero old price reports the percentage as "N/A".
func NewPriceChange(item entity.InventoryRecord, newPrice float64) entity.PriceChange {
	oldP := decimal.NewFromFloat(item.UnitPrice)
	newP := decimal.NewFromFloat(newPrice)
	diff := newP.Sub(oldP)

	percent := "N/A"
	if !oldP.IsZero() {
		percent = diff.Div(oldP).Mul(decimal.NewFromInt(100)).StringFixed(2)
	}
	return entity.PriceChange{
		ProductID:          item.ID,
		Product:            item.ProductName,
		OldPrice:           item.UnitPrice,
		NewPrice:           newPrice,
		PriceChange:        diff.InexactFloat64(),
		PriceChangePercent: percent,
	}
}
