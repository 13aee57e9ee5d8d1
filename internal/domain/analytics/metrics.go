package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

const (
	// NeverSoldAge is the age score given to a product with no recorded sale
	NeverSoldAge = 999

	day = 24 * time.Hour

	velocityWindow = 90 * day
	turnoverWindow = 365 * day

	minTrendEntries    = 4
	minSeasonalEntries = 12
	trendThreshold     = 10.0
	seasonalDeviation  = 0.5
)

// SalesHistoryEntry is one sale of a product
type SalesHistoryEntry struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// DeadstockMetrics are the per-product movement metrics. They are derived on
// every request and never persisted.
type DeadstockMetrics struct {
	VelocityScore   float64          `json:"velocityScore"`
	TurnoverRatio   float64          `json:"turnoverRatio"`
	AgeScore        int              `json:"ageScore"`
	DemandTrend     enum.DemandTrend `json:"demandTrend"`
	SeasonalPattern bool             `json:"seasonalPattern"`
}

// CalculateDeadstockMetrics evaluates every metric against the same instant
func CalculateDeadstockMetrics(history []SalesHistoryEntry, currentStock int, now time.Time) DeadstockMetrics {
	return DeadstockMetrics{
		VelocityScore:   VelocityScore(history, now),
		TurnoverRatio:   TurnoverRatio(history, currentStock, now),
		AgeScore:        AgeScore(history, now),
		DemandTrend:     CalculateDemandTrend(history),
		SeasonalPattern: DetectSeasonalPattern(history),
	}
}

// VelocityScore returns units sold per month over the last 90 days
func VelocityScore(history []SalesHistoryEntry, now time.Time) float64 {
	if len(history) == 0 {
		return 0
	}
	return float64(quantitySince(history, now.Add(-velocityWindow))) / 3
}

// TurnoverRatio returns units sold over the trailing year divided by current stock.
// Current stock stands in for average inventory.
func TurnoverRatio(history []SalesHistoryEntry, currentStock int, now time.Time) float64 {
	if len(history) == 0 || currentStock <= 0 {
		return 0
	}
	return float64(quantitySince(history, now.Add(-turnoverWindow))) / float64(currentStock)
}

// AgeScore returns whole days since the most recent sale, rounded up.
// A product with no dated sale scores NeverSoldAge.
func AgeScore(history []SalesHistoryEntry, now time.Time) int {
	var last time.Time
	for _, sale := range history {
		if sale.Date.After(last) {
			last = sale.Date
		}
	}
	if last.IsZero() {
		return NeverSoldAge
	}

	elapsed := now.Sub(last)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(float64(elapsed) / float64(day)))
}

// CalculateDemandTrend compares the mean quantity of the later half of the
// history with the earlier half. A zero earlier mean is reported as stable.
func CalculateDemandTrend(history []SalesHistoryEntry) enum.DemandTrend {
	if len(history) < minTrendEntries {
		return enum.DemandTrendNoData
	}

	sorted := make([]SalesHistoryEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	mid := len(sorted) / 2
	firstAvg := meanQuantity(sorted[:mid])
	secondAvg := meanQuantity(sorted[mid:])
	if firstAvg == 0 {
		return enum.DemandTrendStable
	}

	change := (secondAvg - firstAvg) / firstAvg * 100
	switch {
	case change > trendThreshold:
		return enum.DemandTrendIncreasing
	case change < -trendThreshold:
		return enum.DemandTrendDecreasing
	default:
		return enum.DemandTrendStable
	}
}

// DetectSeasonalPattern buckets sales by calendar month (ignoring year) and
// reports whether any month deviates from the mean month by more than 50%.
func DetectSeasonalPattern(history []SalesHistoryEntry) bool {
	if len(history) < minSeasonalEntries {
		return false
	}

	var buckets [12]int
	var populated [12]bool
	for _, sale := range history {
		if sale.Date.IsZero() {
			continue
		}
		m := int(sale.Date.Month()) - 1
		buckets[m] += sale.Quantity
		populated[m] = true
	}

	total, count := 0, 0
	for m := range buckets {
		if populated[m] {
			total += buckets[m]
			count++
		}
	}
	if count == 0 || total == 0 {
		return false
	}

	mean := float64(total) / float64(count)
	for m := range buckets {
		if populated[m] && math.Abs(float64(buckets[m])-mean)/mean > seasonalDeviation {
			return true
		}
	}
	return false
}

func quantitySince(history []SalesHistoryEntry, cutoff time.Time) int {
	total := 0
	for _, sale := range history {
		if sale.Date.IsZero() || sale.Date.Before(cutoff) {
			continue
		}
		total += sale.Quantity
	}
	return total
}

func meanQuantity(entries []SalesHistoryEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return float64(total) / float64(len(entries))
}
