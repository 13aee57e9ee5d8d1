package analytics

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

// ReportDateLayout matches the millisecond UTC timestamps used across the API
const ReportDateLayout = "2006-01-02T15:04:05.000Z"

const daysPerMonth = 30

// ReportOptions controls a deadstock report run
type ReportOptions struct {
	Now            time.Time
	Filter         entity.InventoryFilter
	MinValue       float64
	IncludeReports bool
	Workers        int
	Rates          FinancialRates
	DefaultPrice   float64
}

// EnhancedItem is an inventory item with its metrics and classifications
type EnhancedItem struct {
	ProductID         string           `json:"productId"`
	ProductName       string           `json:"productName"`
	Category          string           `json:"category"`
	CurrentStock      int              `json:"currentStock"`
	StockAlertLevel   int              `json:"stockAlertLevel"`
	StockValue        float64          `json:"stockValue"`
	Price             float64          `json:"price"`
	Metrics           DeadstockMetrics `json:"metrics"`
	FinancialImpact   FinancialImpact  `json:"financialImpact"`
	ABCAnalysis       ABCAnalysis      `json:"abcAnalysis"`
	RiskLevel         enum.RiskLevel   `json:"riskLevel"`
	DetailedReport    string           `json:"detailedReport"`
	WarehouseLocation string           `json:"warehouseLocation"`
}

// ExecutiveSummary holds the headline figures of a deadstock report
type ExecutiveSummary struct {
	TotalDeadstockValue     float64         `json:"total_deadstock_value"`
	TotalItemsAnalyzed      int             `json:"total_items_analyzed"`
	CriticalItems           int             `json:"critical_items"`
	HighRiskItems           int             `json:"high_risk_items"`
	MediumRiskItems         int             `json:"medium_risk_items"`
	LowRiskItems            int             `json:"low_risk_items"`
	TotalFinancialImpact    float64         `json:"total_financial_impact"`
	FinancialBreakdown      FinancialImpact `json:"financial_breakdown"`
	PriorityActionsRequired int             `json:"priority_actions_required"`
	ReportDate              string          `json:"report_date"`
}

// CategoryBreakdown aggregates the analysed items of one inventory category
type CategoryBreakdown struct {
	ItemCount     int     `json:"item_count"`
	TotalValue    float64 `json:"total_value"`
	AvgAgeDays    float64 `json:"avg_age_days"`
	VelocityScore float64 `json:"velocity_score"`
}

// ABCBuckets groups items by ABC category, each sorted by stock value descending
type ABCBuckets struct {
	A []EnhancedItem `json:"a_category"`
	B []EnhancedItem `json:"b_category"`
	C []EnhancedItem `json:"c_category"`
}

// RiskBuckets groups items by risk tier
type RiskBuckets struct {
	Critical []EnhancedItem `json:"critical"`
	High     []EnhancedItem `json:"high"`
	Medium   []EnhancedItem `json:"medium"`
	Low      []EnhancedItem `json:"low"`
}

// Items flattens the buckets from critical to low
func (r RiskBuckets) Items() []EnhancedItem {
	out := make([]EnhancedItem, 0, len(r.Critical)+len(r.High)+len(r.Medium)+len(r.Low))
	out = append(out, r.Critical...)
	out = append(out, r.High...)
	out = append(out, r.Medium...)
	return append(out, r.Low...)
}

// Bucket returns the items of one tier
func (r RiskBuckets) Bucket(level enum.RiskLevel) []EnhancedItem {
	switch level {
	case enum.RiskLevelCritical:
		return r.Critical
	case enum.RiskLevelHigh:
		return r.High
	case enum.RiskLevelMedium:
		return r.Medium
	default:
		return r.Low
	}
}

// DeadstockReport is the assembled deadstock analysis
type DeadstockReport struct {
	ExecutiveSummary  ExecutiveSummary             `json:"executive_summary"`
	CategoryBreakdown map[string]CategoryBreakdown `json:"category_breakdown"`
	ABCAnalysis       ABCBuckets                   `json:"abc_analysis"`
	RiskAnalysis      RiskBuckets                  `json:"risk_analysis"`
	Recommendations   Recommendations              `json:"recommendations"`
	DataQuality       DataQuality                  `json:"data_quality"`
}

// BuildDeadstockReport analyses every inventory item that passes the filter and
// the minimum stock value, then assembles the tiered report. Items are
// analysed concurrently; the context is checked before each item.
func BuildDeadstockReport(ctx context.Context, inventory []entity.InventoryRecord, orders []entity.OrderRecord, opts ReportOptions) (*DeadstockReport, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Rates == (FinancialRates{}) {
		opts.Rates = DefaultFinancialRates()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sales := BuildSalesIndex(orders)
	prices := NewPriceBook(inventory, opts.DefaultPrice)
	for name := range sales {
		prices.Price(name)
	}

	results := make([]*EnhancedItem, len(inventory))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range inventory {
		item := inventory[i]
		if !opts.Filter.Matches(item) {
			continue
		}
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = analyseItem(item, sales.History(item.ProductName), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]EnhancedItem, 0, len(results))
	for _, r := range results {
		if r != nil {
			items = append(items, *r)
		}
	}
	return AssembleReport(items, opts.Now, prices.Quality()), nil
}

func analyseItem(item entity.InventoryRecord, history []SalesHistoryEntry, opts ReportOptions) *EnhancedItem {
	stockValue := item.StockValue()
	if stockValue < opts.MinValue {
		return nil
	}

	metrics := CalculateDeadstockMetrics(history, item.CurrentStock, opts.Now)
	risk := DetermineRiskLevel(metrics, item.CurrentStock, item.StockAlertLevel)
	months := float64(metrics.AgeScore) / daysPerMonth

	enhanced := &EnhancedItem{
		ProductID:         item.ID,
		ProductName:       item.ProductName,
		Category:          item.Category,
		CurrentStock:      item.CurrentStock,
		StockAlertLevel:   item.StockAlertLevel,
		StockValue:        stockValue,
		Price:             item.UnitPrice,
		Metrics:           metrics,
		FinancialImpact:   CalculateFinancialImpactWithRates(stockValue, months, opts.Rates),
		ABCAnalysis:       PerformABCAnalysis(stockValue, metrics.VelocityScore, metrics.AgeScore),
		RiskLevel:         risk,
		WarehouseLocation: item.WarehouseLocation,
	}
	if opts.IncludeReports {
		enhanced.DetailedReport = GenerateProductReport(item.ProductName, metrics, item.CurrentStock, stockValue, risk)
	}
	return enhanced
}

// AssembleReport builds the summary, breakdowns, buckets and recommendations
// from already analysed items. Items keep the order they were given in for
// every aggregate that does not sort.
func AssembleReport(items []EnhancedItem, now time.Time, quality DataQuality) *DeadstockReport {
	if quality.UnmatchedNames == nil {
		quality.UnmatchedNames = []string{}
	}

	summary := ExecutiveSummary{
		TotalItemsAnalyzed: len(items),
		ReportDate:         now.UTC().Format(ReportDateLayout),
	}
	for _, item := range items {
		summary.TotalDeadstockValue += item.StockValue
		summary.FinancialBreakdown = summary.FinancialBreakdown.Add(item.FinancialImpact)
		switch item.RiskLevel {
		case enum.RiskLevelCritical:
			summary.CriticalItems++
		case enum.RiskLevelHigh:
			summary.HighRiskItems++
		case enum.RiskLevelMedium:
			summary.MediumRiskItems++
		default:
			summary.LowRiskItems++
		}
	}
	summary.TotalFinancialImpact = summary.FinancialBreakdown.TotalImpact
	summary.PriorityActionsRequired = summary.CriticalItems + summary.HighRiskItems

	categories := BreakdownByCategory(items)
	abc := BucketByABC(items)

	return &DeadstockReport{
		ExecutiveSummary:  summary,
		CategoryBreakdown: categories,
		ABCAnalysis:       abc,
		RiskAnalysis:      BucketByRisk(items),
		Recommendations:   BuildRecommendations(summary, categories, abc),
		DataQuality:       quality,
	}
}

// BreakdownByCategory averages age and velocity per inventory category
func BreakdownByCategory(items []EnhancedItem) map[string]CategoryBreakdown {
	type acc struct {
		count    int
		value    float64
		age      float64
		velocity float64
	}
	totals := make(map[string]*acc)
	for _, item := range items {
		a, ok := totals[item.Category]
		if !ok {
			a = &acc{}
			totals[item.Category] = a
		}
		a.count++
		a.value += item.StockValue
		a.age += float64(item.Metrics.AgeScore)
		a.velocity += item.Metrics.VelocityScore
	}

	out := make(map[string]CategoryBreakdown, len(totals))
	for name, a := range totals {
		out[name] = CategoryBreakdown{
			ItemCount:     a.count,
			TotalValue:    a.value,
			AvgAgeDays:    a.age / float64(a.count),
			VelocityScore: a.velocity / float64(a.count),
		}
	}
	return out
}

// BucketByABC splits items by ABC category, each bucket ordered like the risk tiers
func BucketByABC(items []EnhancedItem) ABCBuckets {
	b := ABCBuckets{A: []EnhancedItem{}, B: []EnhancedItem{}, C: []EnhancedItem{}}
	for _, item := range items {
		switch item.ABCAnalysis.Category {
		case enum.ABCCategoryA:
			b.A = append(b.A, item)
		case enum.ABCCategoryB:
			b.B = append(b.B, item)
		default:
			b.C = append(b.C, item)
		}
	}
	SortByRisk(b.A)
	SortByRisk(b.B)
	SortByRisk(b.C)
	return b
}

// BucketByRisk splits items by their risk tier and sorts each tier.
// Bucketing the flattened output again yields the same buckets.
func BucketByRisk(items []EnhancedItem) RiskBuckets {
	b := RiskBuckets{
		Critical: []EnhancedItem{},
		High:     []EnhancedItem{},
		Medium:   []EnhancedItem{},
		Low:      []EnhancedItem{},
	}
	for _, item := range items {
		switch item.RiskLevel {
		case enum.RiskLevelCritical:
			b.Critical = append(b.Critical, item)
		case enum.RiskLevelHigh:
			b.High = append(b.High, item)
		case enum.RiskLevelMedium:
			b.Medium = append(b.Medium, item)
		default:
			b.Low = append(b.Low, item)
		}
	}
	SortByRisk(b.Critical)
	SortByRisk(b.High)
	SortByRisk(b.Medium)
	SortByRisk(b.Low)
	return b
}
