package analytics

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

// CurrencySymbol prefixes monetary values in text reports
const CurrencySymbol = "₹"

var riskAdvice = map[enum.RiskLevel][]string{
	enum.RiskLevelCritical: {
		"⚠️ CRITICAL DEADSTOCK ALERT:",
		"• Immediate liquidation required",
		"• Consider 40-60% discount or bundle deals",
		"• High risk of total loss if no action taken",
	},
	enum.RiskLevelHigh: {
		"🔸 HIGH RISK DEADSTOCK:",
		"• Action required within 30 days",
		"• Implement promotional strategies",
		"• Monitor closely for further deterioration",
	},
	enum.RiskLevelMedium: {
		"🔹 MEDIUM RISK MONITORING:",
		"• Enhanced marketing recommended",
		"• Consider cross-selling opportunities",
		"• Review reorder policies",
	},
	enum.RiskLevelLow: {
		"✅ LOW RISK - MONITOR:",
		"• Continue regular monitoring",
		"• Normal sales patterns observed",
		"• No immediate action required",
	},
}

// GenerateProductReport renders the multi-line text report of one product
func GenerateProductReport(productName string, m DeadstockMetrics, currentStock int, stockValue float64, risk enum.RiskLevel) string {
	p := message.NewPrinter(language.English)
	seasonal := "NO"
	if m.SeasonalPattern {
		seasonal = "YES"
	}

	lines := []string{
		"=== DEADSTOCK ANALYSIS: " + strings.ToUpper(productName) + " ===",
		"Risk Level: " + strings.ToUpper(risk.String()),
		p.Sprintf("Current Stock: %d units", currentStock),
		p.Sprintf("Stock Value: %s%.2f", CurrencySymbol, stockValue),
		"",
		"PERFORMANCE METRICS:",
		p.Sprintf("• Velocity Score: %.2f units/month", m.VelocityScore),
		p.Sprintf("• Turnover Ratio: %.2fx annually", m.TurnoverRatio),
		p.Sprintf("• Days Since Last Sale: %d", m.AgeScore),
		"• Demand Trend: " + m.DemandTrend.Label(),
		"• Seasonal Pattern: " + seasonal,
		"",
	}
	advice, ok := riskAdvice[risk]
	if !ok {
		advice = riskAdvice[enum.RiskLevelLow]
	}
	lines = append(lines, advice...)
	return strings.Join(lines, "\n")
}
