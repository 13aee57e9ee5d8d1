package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

const (
	// NoStockout marks a product whose forecast demand is zero
	NoStockout = -1

	seasonalPeriod      = 7
	smoothingAlpha      = 0.2
	smoothingBeta       = 0.1
	smoothingGamma      = 0.1
	trendSlopeThreshold = 0.15
	trendTailDays       = 30

	serviceLevelZ        = 1.645
	defaultOrderCost     = 50.0
	defaultHoldingRate   = 0.25
	highVariability      = 0.5
	erraticVariability   = 0.75
	lowReliability       = 0.9
	minConfidence        = 0.5
	stockoutMarginDays   = 7
	alertLevelMultiplier = 1.5
	forecastDateLayout   = "2006-01-02"
)

// ForecastOptions tunes a restock forecast run
type ForecastOptions struct {
	Now                time.Time
	WindowDays         int
	DefaultLeadTime    int
	DefaultReliability float64
	OrderCost          float64
	HoldingCostRate    float64
}

// DefaultForecastOptions analyses 90 days with a 7 day lead time and 0.9 supplier reliability
func DefaultForecastOptions(now time.Time) ForecastOptions {
	return ForecastOptions{
		Now:                now,
		WindowDays:         90,
		DefaultLeadTime:    7,
		DefaultReliability: 0.9,
		OrderCost:          defaultOrderCost,
		HoldingCostRate:    defaultHoldingRate,
	}
}

// ForecastResult is the restock recommendation for one product
type ForecastResult struct {
	Product               string              `json:"product"`
	CurrentStock          int                 `json:"current_stock"`
	RecommendedStock      int64               `json:"recommended_stock"`
	UrgencyLevel          enum.Urgency        `json:"urgency_level"`
	DaysUntilStockout     int                 `json:"days_until_stockout"`
	ProjectedStockoutDate string              `json:"projected_stockout_date"`
	ExpectedDailyDemand   float64             `json:"expected_daily_demand"`
	ReorderPoint          int64               `json:"reorder_point"`
	EconomicOrderQuantity int64               `json:"economic_order_quantity"`
	CostImpact            float64             `json:"cost_impact"`
	ConfidenceScore       float64             `json:"confidence_score"`
	TrendDirection        enum.TrendDirection `json:"trend_direction"`
	Reasons               []string            `json:"reasons"`
	Recommendations       []string            `json:"recommendations"`
}

// ForecastSummary holds the headline figures of a forecast run
type ForecastSummary struct {
	TotalProductsAnalyzed  int     `json:"total_products_analyzed"`
	CriticalItems          int     `json:"critical_items"`
	HighPriorityItems      int     `json:"high_priority_items"`
	TotalEstimatedCost     float64 `json:"total_estimated_cost"`
	AverageConfidenceScore float64 `json:"average_confidence_score"`
}

// RestockForecast is the full forecast response
type RestockForecast struct {
	UrgentRestocking        []ForecastResult `json:"urgent_restocking"`
	Summary                 ForecastSummary  `json:"summary"`
	GeneratedAt             string           `json:"generated_at"`
	NextAnalysisRecommended string           `json:"next_analysis_recommended"`
}

// productDemand is the demand profile of one product over the window
type productDemand struct {
	daily        []float64
	totalSold    int
	orderCount   int
	lastSaleDate time.Time
}

// ForecastRestocking projects demand for every inventory item and returns
// the items that are at or below their reorder point or will stock out
// within a week of their supplier lead time, most urgent first.
func ForecastRestocking(inventory []entity.InventoryRecord, orders []entity.OrderRecord, opts ForecastOptions) RestockForecast {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 90
	}
	if opts.DefaultLeadTime <= 0 {
		opts.DefaultLeadTime = 7
	}
	if opts.DefaultReliability <= 0 {
		opts.DefaultReliability = 0.9
	}
	if opts.OrderCost <= 0 {
		opts.OrderCost = defaultOrderCost
	}
	if opts.HoldingCostRate <= 0 {
		opts.HoldingCostRate = defaultHoldingRate
	}

	window := NewDateWindow(opts.Now, opts.WindowDays)
	demand := buildDemand(orders, window)

	results := make([]ForecastResult, 0)
	for _, item := range inventory {
		profile, ok := demand[item.ProductName]
		if !ok {
			profile = &productDemand{daily: make([]float64, len(window.Days()))}
		}
		if r, include := forecastItem(item, profile, opts); include {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.UrgencyLevel.Rank() != b.UrgencyLevel.Rank() {
			return a.UrgencyLevel.Rank() < b.UrgencyLevel.Rank()
		}
		return stockoutSortKey(a.DaysUntilStockout) < stockoutSortKey(b.DaysUntilStockout)
	})

	summary := ForecastSummary{TotalProductsAnalyzed: len(inventory)}
	totalCost, totalConfidence := 0.0, 0.0
	for _, r := range results {
		switch r.UrgencyLevel {
		case enum.UrgencyCritical:
			summary.CriticalItems++
			summary.HighPriorityItems++
		case enum.UrgencyHigh:
			summary.HighPriorityItems++
		}
		totalCost += r.CostImpact
		totalConfidence += r.ConfidenceScore
	}
	summary.TotalEstimatedCost = round2(totalCost)
	if len(results) > 0 {
		summary.AverageConfidenceScore = round2(totalConfidence / float64(len(results)))
	}

	return RestockForecast{
		UrgentRestocking:        results,
		Summary:                 summary,
		GeneratedAt:             opts.Now.UTC().Format(ReportDateLayout),
		NextAnalysisRecommended: opts.Now.Add(day).UTC().Format(ReportDateLayout),
	}
}

func buildDemand(orders []entity.OrderRecord, window DateWindow) map[string]*productDemand {
	days := window.Days()
	position := make(map[time.Time]int, len(days))
	for i, d := range days {
		position[d] = i
	}

	demand := make(map[string]*productDemand)
	for _, order := range orders {
		for _, line := range order.Items {
			if !line.Valid() {
				continue
			}
			p, ok := demand[line.ProductName]
			if !ok {
				p = &productDemand{daily: make([]float64, len(days))}
				demand[line.ProductName] = p
			}
			p.totalSold += line.Quantity
			p.orderCount++
			if order.Date.After(p.lastSaleDate) {
				p.lastSaleDate = order.Date
			}
			if i, ok := position[order.Day()]; ok {
				p.daily[i] += float64(line.Quantity)
			}
		}
	}
	return demand
}

func forecastItem(item entity.InventoryRecord, p *productDemand, opts ForecastOptions) (ForecastResult, bool) {
	forecast := SeasonalTrendSmoothing(p.daily, seasonalPeriod, smoothingAlpha, smoothingBeta, smoothingGamma)
	forecastedDemand := 0.0
	if len(forecast) > 0 {
		forecastedDemand = forecast[len(forecast)-1]
	}

	dailyAverage := mean(p.daily)
	stdDev := SampleStdDev(p.daily)

	leadTime := item.SupplierLeadTimeDays
	if leadTime <= 0 {
		leadTime = opts.DefaultLeadTime
	}
	reliability := item.SupplierReliability
	if reliability <= 0 {
		reliability = opts.DefaultReliability
	}

	safetyStock := serviceLevelZ * stdDev * math.Sqrt(float64(leadTime)) / reliability
	reorderPoint := forecastedDemand*float64(leadTime) + safetyStock
	eoq := EconomicOrderQuantity(forecastedDemand*365, opts.OrderCost, opts.HoldingCostRate, item.UnitPrice)

	daysUntilStockout := NoStockout
	if forecastedDemand > 0 {
		daysUntilStockout = int(math.Floor(float64(item.CurrentStock) / forecastedDemand))
	}
	stocksOut := daysUntilStockout != NoStockout

	belowReorder := float64(item.CurrentStock) <= reorderPoint
	if !belowReorder && !(stocksOut && daysUntilStockout <= leadTime+stockoutMarginDays) {
		return ForecastResult{}, false
	}

	variability := 0.0
	if dailyAverage > 0 {
		variability = stdDev / dailyAverage
	}

	recency := 0.0
	if !p.lastSaleDate.IsZero() {
		daysSince := opts.Now.Sub(p.lastSaleDate).Hours() / 24
		recency = math.Max(0, 1-daysSince/float64(opts.WindowDays))
	}
	confidence := math.Max(minConfidence, (1-variability)*(float64(len(p.daily))/float64(opts.WindowDays))*recency)
	confidence = math.Min(confidence, 1)

	trend := SlopeDirection(p.daily)
	recommended := math.Max(reorderPoint+eoq, float64(item.StockAlertLevel)*alertLevelMultiplier) *
		item.LifecycleStage.Multiplier()

	urgency := enum.UrgencyLow
	if stocksOut {
		switch {
		case float64(daysUntilStockout) <= float64(leadTime)/2:
			urgency = enum.UrgencyCritical
		case daysUntilStockout <= leadTime:
			urgency = enum.UrgencyHigh
		case daysUntilStockout <= leadTime+stockoutMarginDays:
			urgency = enum.UrgencyMedium
		}
	}

	reasons := make([]string, 0)
	if belowReorder {
		reasons = append(reasons, fmt.Sprintf("Stock (%d) is below reorder point (%d)", item.CurrentStock, int64(math.Round(reorderPoint))))
	}
	if stocksOut && daysUntilStockout <= leadTime {
		reasons = append(reasons, fmt.Sprintf("Projected to stock out in %d days, which is within the lead time of %d days.", daysUntilStockout, leadTime))
	}
	if trend == enum.TrendIncreasing {
		reasons = append(reasons, "Demand trend is increasing.")
	}
	if variability > highVariability {
		reasons = append(reasons, "High demand volatility detected.")
	}
	if item.LifecycleStage == enum.LifecycleGrowth {
		reasons = append(reasons, "Product is in a growth stage.")
	}

	recommendations := []string{
		fmt.Sprintf("Order at least %d units to reach recommended stock level.", int64(math.Round(recommended-float64(item.CurrentStock)))),
	}
	if eoq > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Optimal order quantity is ~%d units to balance costs.", int64(math.Round(eoq))))
	}
	if trend == enum.TrendIncreasing {
		recommendations = append(recommendations, "Consider adjusting baseline forecast upwards.")
	}
	if item.SupplierReliability > 0 && item.SupplierReliability < lowReliability {
		recommendations = append(recommendations, fmt.Sprintf("Supplier reliability is low (%g), justifying higher safety stock.", item.SupplierReliability))
	}
	if variability > erraticVariability {
		recommendations = append(recommendations, "Demand is highly erratic. Recommend reviewing safety stock levels and forecasting model parameters.")
	}

	stockoutDate := "N/A"
	if stocksOut {
		stockoutDate = opts.Now.AddDate(0, 0, daysUntilStockout).UTC().Format(forecastDateLayout)
	}

	return ForecastResult{
		Product:               item.ProductName,
		CurrentStock:          item.CurrentStock,
		RecommendedStock:      int64(math.Round(recommended)),
		UrgencyLevel:          urgency,
		DaysUntilStockout:     daysUntilStockout,
		ProjectedStockoutDate: stockoutDate,
		ExpectedDailyDemand:   round2(forecastedDemand),
		ReorderPoint:          int64(math.Round(reorderPoint)),
		EconomicOrderQuantity: int64(math.Round(eoq)),
		CostImpact:            round2(math.Max(0, recommended-float64(item.CurrentStock)) * item.UnitPrice),
		ConfidenceScore:       round2(confidence),
		TrendDirection:        trend,
		Reasons:               reasons,
		Recommendations:       recommendations,
	}, true
}

// SeasonalTrendSmoothing runs additive Holt-Winters smoothing over a daily
// series and returns the one-step-ahead forecast for each point. Series
// shorter than one season are forecast as their mean.
func SeasonalTrendSmoothing(data []float64, period int, alpha, beta, gamma float64) []float64 {
	forecast := make([]float64, len(data))
	if len(data) < period || period < 2 {
		avg := mean(data)
		for i := range forecast {
			forecast[i] = avg
		}
		return forecast
	}

	level := mean(data[:period])
	trend := (data[period-1] - data[0]) / float64(period-1)
	seasonal := make([]float64, period)
	for i := range seasonal {
		seasonal[i] = data[i] - level
	}

	for i, x := range data {
		if i < period {
			forecast[i] = x
			continue
		}
		lastLevel, lastTrend := level, trend
		s := i % period
		level = alpha*(x-seasonal[s]) + (1-alpha)*(lastLevel+lastTrend)
		trend = beta*(level-lastLevel) + (1-beta)*lastTrend
		seasonal[s] = gamma*(x-level) + (1-gamma)*seasonal[s]
		forecast[i] = math.Max(0, level+trend+seasonal[(i+1)%period])
	}
	return forecast
}

// LinearSlope returns the least-squares slope of the series against its index
func LinearSlope(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0
	}
	xMean := float64(n-1) / 2
	yMean := mean(data)
	num, den := 0.0, 0.0
	for i, y := range data {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// SlopeDirection classifies the least-squares slope of a series
func SlopeDirection(data []float64) enum.TrendDirection {
	slope := LinearSlope(data)
	switch {
	case slope > trendSlopeThreshold:
		return enum.TrendIncreasing
	case slope < -trendSlopeThreshold:
		return enum.TrendDecreasing
	}
	return enum.TrendStable
}

// SampleStdDev returns the sample standard deviation, zero below two points
func SampleStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := mean(data)
	sum := 0.0
	for _, v := range data {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(data)-1))
}

// EconomicOrderQuantity is sqrt(2DS/H) where H is price times the holding rate.
// Any non-positive input yields zero.
func EconomicOrderQuantity(annualDemand, orderCost, holdingRate, price float64) float64 {
	if annualDemand <= 0 || orderCost <= 0 || holdingRate <= 0 || price <= 0 {
		return 0
	}
	return math.Sqrt(2 * annualDemand * orderCost / (price * holdingRate))
}

func stockoutSortKey(days int) int {
	if days == NoStockout {
		return math.MaxInt
	}
	return days
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
