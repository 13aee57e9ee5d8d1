package enum

import "strings"

// DemandTrend describes the direction of a product's sales over its history
type DemandTrend string

const (
	DemandTrendIncreasing DemandTrend = "increasing"
	DemandTrendDecreasing DemandTrend = "decreasing"
	DemandTrendStable     DemandTrend = "stable"
	DemandTrendNoData     DemandTrend = "no_data"
)

// Label returns the upper-case display form used in text reports ("NO DATA")
func (t DemandTrend) Label() string {
	return strings.ToUpper(strings.Replace(string(t), "_", " ", 1))
}
