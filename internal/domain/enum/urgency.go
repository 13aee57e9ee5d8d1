package enum

// Urgency is the restocking urgency of a forecast result
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Rank orders urgencies with the most pressing first
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	default:
		return 3
	}
}

// TrendDirection is the slope-based direction of a daily sales series
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "INCREASING"
	TrendStable     TrendDirection = "STABLE"
	TrendDecreasing TrendDirection = "DECREASING"
)

// LifecycleStage is the product lifecycle stage reported by the catalogue
type LifecycleStage string

const (
	LifecycleNew      LifecycleStage = "new"
	LifecycleGrowth   LifecycleStage = "growth"
	LifecycleMaturity LifecycleStage = "maturity"
	LifecycleDecline  LifecycleStage = "decline"
)

// Multiplier scales the recommended stock level for the stage
func (s LifecycleStage) Multiplier() float64 {
	switch s {
	case LifecycleNew:
		return 1.5
	case LifecycleGrowth:
		return 1.2
	case LifecycleDecline:
		return 0.8
	default:
		return 1.0
	}
}
