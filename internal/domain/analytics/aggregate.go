package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
)

const (
	// LeaderboardSize is the number of customers kept on a leaderboard
	LeaderboardSize = 10
	// SpendPerUnit is the placeholder spend per unit ordered used by TopSpenders
	SpendPerUnit = 100

	bestSellerCount   = 10
	worstSellerCount  = 5
	maxLabelLength    = 20
	truncatedLabelLen = 17

	dateLabelLayout = "Jan 2"
)

// DateWindow is an inclusive range of calendar dates
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow returns the window covering the given number of days before end, plus end itself
func NewDateWindow(end time.Time, days int) DateWindow {
	if days < 0 {
		days = 0
	}
	end = entity.TruncateDay(end)
	return DateWindow{Start: end.AddDate(0, 0, -days), End: end}
}

// Days enumerates every calendar date in the window in ascending order
func (w DateWindow) Days() []time.Time {
	start, end := entity.TruncateDay(w.Start), entity.TruncateDay(w.End)
	days := make([]time.Time, 0)
	if start.IsZero() || end.IsZero() {
		return days
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether t falls on a calendar date inside the window
func (w DateWindow) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	d := entity.TruncateDay(t)
	return !d.Before(entity.TruncateDay(w.Start)) && !d.After(entity.TruncateDay(w.End))
}

// DateSeries is a per-day count series
type DateSeries struct {
	Dates  []string `json:"dates"`
	Counts []int    `json:"counts"`
}

// RevenueSeries is a per-day revenue series in whole currency units
type RevenueSeries struct {
	Dates    []string `json:"dates"`
	Revenues []int64  `json:"revenues"`
}

// CustomerCounts is the frequent customers leaderboard
type CustomerCounts struct {
	Names  []string `json:"names"`
	Counts []int    `json:"counts"`
}

// CustomerAmounts is the top spenders leaderboard
type CustomerAmounts struct {
	Names   []string `json:"names"`
	Amounts []int64  `json:"amounts"`
}

// ChartDataset is one series of a product chart
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ProductSalesData is the best and worst seller chart
type ProductSalesData struct {
	Labels       []string        `json:"labels"`
	Datasets     []ChartDataset  `json:"datasets"`
	BestSellers  []NamedQuantity `json:"bestSellers"`
	WorstSellers []NamedQuantity `json:"worstSellers"`
}

// OrderTrends counts orders per calendar day across the window.
// Every day in the window is present, days without orders count zero.
func OrderTrends(orders []entity.OrderRecord, window DateWindow) DateSeries {
	days := window.Days()
	buckets := make(map[time.Time]int, len(days))
	for _, order := range orders {
		if window.Contains(order.Date) {
			buckets[order.Day()]++
		}
	}

	series := DateSeries{
		Dates:  make([]string, 0, len(days)),
		Counts: make([]int, 0, len(days)),
	}
	for _, d := range days {
		series.Dates = append(series.Dates, d.Format(dateLabelLayout))
		series.Counts = append(series.Counts, buckets[d])
	}
	return series
}

// RevenuePerDay sums quantity times unit price per calendar day across the
// window, rounding each day to whole currency units.
func RevenuePerDay(orders []entity.OrderRecord, prices *PriceBook, window DateWindow) RevenueSeries {
	days := window.Days()
	buckets := make(map[time.Time]float64, len(days))
	for _, order := range orders {
		if !window.Contains(order.Date) {
			continue
		}
		revenue := 0.0
		for _, line := range order.Items {
			if line.Valid() {
				revenue += float64(line.Quantity) * prices.Price(line.ProductName)
			}
		}
		buckets[order.Day()] += revenue
	}

	series := RevenueSeries{
		Dates:    make([]string, 0, len(days)),
		Revenues: make([]int64, 0, len(days)),
	}
	for _, d := range days {
		series.Dates = append(series.Dates, d.Format(dateLabelLayout))
		series.Revenues = append(series.Revenues, int64(math.Round(buckets[d])))
	}
	return series
}

// tally accumulates a value per key while remembering first-seen order
type tally struct {
	order  []string
	values map[string]float64
}

func newTally() *tally {
	return &tally{values: make(map[string]float64)}
}

func (t *tally) add(key string, v float64) {
	if _, ok := t.values[key]; !ok {
		t.order = append(t.order, key)
	}
	t.values[key] += v
}

// top returns the keys sorted by value descending; ties keep first-seen order
func (t *tally) top(limit int) []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.values[keys[i]] > t.values[keys[j]]
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// FrequentCustomers ranks customers by order count. Orders without a
// customer name are credited to "Unknown". Ties keep the order in which
// customers were first encountered.
func FrequentCustomers(orders []entity.OrderRecord, limit int) CustomerCounts {
	t := newTally()
	for _, order := range orders {
		t.add(order.Customer(), 1)
	}

	keys := t.top(limit)
	out := CustomerCounts{Names: make([]string, 0, len(keys)), Counts: make([]int, 0, len(keys))}
	for _, k := range keys {
		out.Names = append(out.Names, k)
		out.Counts = append(out.Counts, int(t.values[k]))
	}
	return out
}

// TopSpenders ranks customers by estimated spend, where each unit ordered
// counts SpendPerUnit. The figure approximates revenue and is not priced.
func TopSpenders(orders []entity.OrderRecord, limit int) CustomerAmounts {
	t := newTally()
	for _, order := range orders {
		t.add(order.Customer(), float64(order.TotalQuantity()*SpendPerUnit))
	}

	keys := t.top(limit)
	out := CustomerAmounts{Names: make([]string, 0, len(keys)), Amounts: make([]int64, 0, len(keys))}
	for _, k := range keys {
		out.Names = append(out.Names, k)
		out.Amounts = append(out.Amounts, int64(math.Round(t.values[k])))
	}
	return out
}

// ProductSalesChart builds the chart of the ten best sellers followed by the
// five worst sellers (worst first). With fewer than fifteen products the two
// groups overlap.
func ProductSalesChart(sales SalesIndex, prices *PriceBook) ProductSalesData {
	totals := sales.Totals()

	best := totals
	if len(best) > bestSellerCount {
		best = best[:bestSellerCount]
	}
	worst := make([]NamedQuantity, 0, worstSellerCount)
	for i := len(totals) - 1; i >= 0 && len(worst) < worstSellerCount; i-- {
		worst = append(worst, totals[i])
	}

	chart := ProductSalesData{
		Labels:       make([]string, 0, len(best)+len(worst)),
		BestSellers:  append(make([]NamedQuantity, 0, len(best)), best...),
		WorstSellers: worst,
	}
	units := ChartDataset{Label: "Units Sold", Data: make([]float64, 0, len(best)+len(worst))}
	revenue := ChartDataset{Label: "Revenue", Data: make([]float64, 0, len(best)+len(worst))}

	for _, group := range [][]NamedQuantity{best, worst} {
		for _, p := range group {
			chart.Labels = append(chart.Labels, ChartLabel(p.Name))
			units.Data = append(units.Data, float64(p.Quantity))
			revenue.Data = append(revenue.Data, float64(p.Quantity)*prices.Price(p.Name))
		}
	}
	chart.Datasets = []ChartDataset{units, revenue}
	return chart
}

// ChartLabel shortens product names longer than 20 characters to 17 plus an ellipsis
func ChartLabel(name string) string {
	r := []rune(name)
	if len(r) <= maxLabelLength {
		return name
	}
	return string(r[:truncatedLabelLen]) + "..."
}
