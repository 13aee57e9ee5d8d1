package enum

import (
	"encoding/json"
	"fmt"
)

// RiskLevel represents the deadstock severity tier of an inventory item.
// The numeric value doubles as the sort priority (critical=4 .. low=1).
type RiskLevel int

const (
	RiskLevelLow      RiskLevel = 1
	RiskLevelMedium   RiskLevel = 2
	RiskLevelHigh     RiskLevel = 3
	RiskLevelCritical RiskLevel = 4
)

// RiskLevels lists every tier from most to least severe
var RiskLevels = []RiskLevel{RiskLevelCritical, RiskLevelHigh, RiskLevelMedium, RiskLevelLow}

func (r RiskLevel) String() string {
	switch r {
	case RiskLevelCritical:
		return "critical"
	case RiskLevelHigh:
		return "high"
	case RiskLevelMedium:
		return "medium"
	default:
		return "low"
	}
}

// Priority returns the sort weight of the tier
func (r RiskLevel) Priority() int {
	if r < RiskLevelLow || r > RiskLevelCritical {
		return int(RiskLevelLow)
	}
	return int(r)
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = RiskLevel(i)
		return nil
	}
	parsed, err := ParseRiskLevel(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRiskLevel converts a tier name into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch s {
	case "critical":
		return RiskLevelCritical, nil
	case "high":
		return RiskLevelHigh, nil
	case "medium":
		return RiskLevelMedium, nil
	case "low":
		return RiskLevelLow, nil
	}
	return RiskLevelLow, fmt.Errorf("unknown risk level %q", s)
}
