package analytics

import (
	"math"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

// NoSalesData names the top product when the window has no sales
const NoSalesData = "No sales data"

const overviewTopSpenders = 5

// OverviewSummary holds the headline figures of the current window
type OverviewSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      int64   `json:"totalRevenue"`
	AverageOrderValue int64   `json:"averageOrderValue"`
	TotalProducts     int     `json:"totalProducts"`
	TotalCustomers    int     `json:"totalCustomers"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OrderGrowth       float64 `json:"orderGrowth"`
	TopSellingProduct string  `json:"topSellingProduct"`
}

// RecentActivity counts orders by status and low-stock items
type RecentActivity struct {
	RecentOrders    int `json:"recentOrders"`
	PendingOrders   int `json:"pendingOrders"`
	FulfilledOrders int `json:"fulfilledOrders"`
	LowStockItems   int `json:"lowStockItems"`
}

// PerformanceMetrics holds rates measured over the current window
type PerformanceMetrics struct {
	FulfillmentRate int64 `json:"fulfillmentRate"`
}

// OverviewTrends is the per-day order count and revenue over the window
type OverviewTrends struct {
	Dates   []string `json:"dates"`
	Orders  []int    `json:"orders"`
	Revenue []int64  `json:"revenue"`
}

// CategoryStock is the units in stock per category, in first-seen order
type CategoryStock struct {
	Categories []string `json:"categories"`
	Stock      []int    `json:"sales"`
}

// CustomerSpend is one customer's priced spend
type CustomerSpend struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// CustomerInsights splits window customers into first-time and returning
type CustomerInsights struct {
	NewCustomers       int             `json:"newCustomers"`
	ReturningCustomers int             `json:"returningCustomers"`
	TopSpenders        []CustomerSpend `json:"topSpenders"`
}

// OverviewCharts groups the chart series of the overview
type OverviewCharts struct {
	OrderTrends        OverviewTrends   `json:"orderTrends"`
	ProductPerformance CategoryStock    `json:"productPerformance"`
	CustomerInsights   CustomerInsights `json:"customerInsights"`
}

// Overview is the dashboard overview of the store
type Overview struct {
	Summary            OverviewSummary    `json:"summary"`
	RecentActivity     RecentActivity     `json:"recentActivity"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
	ChartData          OverviewCharts     `json:"chartData"`
	DataQuality        DataQuality        `json:"dataQuality"`
}

// BuildOverview summarises the window ending at now and compares it with the
// window of the same length immediately before it. Revenue is priced through
// the price book.
func BuildOverview(orders []entity.OrderRecord, inventory []entity.InventoryRecord, prices *PriceBook, now time.Time, days int) Overview {
	current := NewDateWindow(now, days)
	previous := DateWindow{
		Start: current.Start.AddDate(0, 0, -days),
		End:   current.Start.AddDate(0, 0, -1),
	}

	orderValue := func(o entity.OrderRecord) float64 {
		v := 0.0
		for _, line := range o.Items {
			if line.Valid() {
				v += float64(line.Quantity) * prices.Price(line.ProductName)
			}
		}
		return v
	}

	var (
		revenue, prevRevenue float64
		count, prevCount     int
		fulfilled            int
		customers            = make(map[string]struct{})
		productUnits         = newTally()
		firstSeen            = make(map[string]time.Time)
		spend                = newTally()
	)

	activity := RecentActivity{}
	for _, o := range orders {
		key := customerKey(o)
		if o.HasDate() {
			if first, ok := firstSeen[key]; !ok || o.Date.Before(first) {
				firstSeen[key] = o.Date
			}
		}
		spend.add(key, orderValue(o))

		switch o.Status {
		case enum.OrderStatusPending:
			activity.PendingOrders++
		case enum.OrderStatusFulfilled:
			activity.FulfilledOrders++
		}

		switch {
		case current.Contains(o.Date):
			count++
			revenue += orderValue(o)
			customers[key] = struct{}{}
			if o.Status == enum.OrderStatusFulfilled {
				fulfilled++
			}
			for _, line := range o.Items {
				if line.Valid() {
					productUnits.add(line.ProductName, float64(line.Quantity))
				}
			}
		case previous.Contains(o.Date):
			prevCount++
			prevRevenue += orderValue(o)
		}
	}

	for _, item := range inventory {
		if item.LowStock() {
			activity.LowStockItems++
		}
	}
	activity.RecentOrders = count

	summary := OverviewSummary{
		TotalOrders:       count,
		TotalRevenue:      int64(math.Round(revenue)),
		TotalProducts:     len(inventory),
		TotalCustomers:    len(customers),
		RevenueGrowth:     growth(revenue, prevRevenue),
		OrderGrowth:       growth(float64(count), float64(prevCount)),
		TopSellingProduct: NoSalesData,
	}
	if count > 0 {
		summary.AverageOrderValue = int64(math.Round(revenue / float64(count)))
	}
	if top := productUnits.top(1); len(top) > 0 {
		summary.TopSellingProduct = top[0]
	}

	perf := PerformanceMetrics{}
	if count > 0 {
		perf.FulfillmentRate = int64(math.Round(float64(fulfilled) / float64(count) * 100))
	}

	insights := CustomerInsights{TopSpenders: make([]CustomerSpend, 0, overviewTopSpenders)}
	for key := range customers {
		if first, ok := firstSeen[key]; ok && current.Contains(first) {
			insights.NewCustomers++
		} else {
			insights.ReturningCustomers++
		}
	}
	for _, key := range spend.top(overviewTopSpenders) {
		insights.TopSpenders = append(insights.TopSpenders, CustomerSpend{Name: key, Amount: int64(math.Round(spend.values[key]))})
	}

	return Overview{
		Summary:            summary,
		RecentActivity:     activity,
		PerformanceMetrics: perf,
		ChartData: OverviewCharts{
			OrderTrends:        overviewTrends(orders, prices, current),
			ProductPerformance: stockByCategory(inventory),
			CustomerInsights:   insights,
		},
		DataQuality: prices.Quality(),
	}
}

func overviewTrends(orders []entity.OrderRecord, prices *PriceBook, window DateWindow) OverviewTrends {
	counts := OrderTrends(orders, window)
	revenue := RevenuePerDay(orders, prices, window)
	return OverviewTrends{Dates: counts.Dates, Orders: counts.Counts, Revenue: revenue.Revenues}
}

func stockByCategory(inventory []entity.InventoryRecord) CategoryStock {
	t := newTally()
	for _, item := range inventory {
		t.add(item.Category, float64(max(item.CurrentStock, 0)))
	}
	out := CategoryStock{Categories: make([]string, 0, len(t.order)), Stock: make([]int, 0, len(t.order))}
	for _, c := range t.order {
		out.Categories = append(out.Categories, c)
		out.Stock = append(out.Stock, int(t.values[c]))
	}
	return out
}

// customerKey identifies a customer by email, falling back to name
func customerKey(o entity.OrderRecord) string {
	if o.CustomerEmail != "" {
		return o.CustomerEmail
	}
	return o.Customer()
}

// growth is the percentage change from prev to cur with two decimals, zero when prev is zero
func growth(cur, prev float64) float64 {
	if prev <= 0 {
		return 0
	}
	return round2((cur - prev) / prev * 100)
}
