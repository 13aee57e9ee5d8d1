package analytics

import "github.com/shopspring/decimal"

// FinancialRates are the monthly cost rates applied to held stock
type FinancialRates struct {
	StorageRate      float64 `json:"storageRate"`
	OpportunityRate  float64 `json:"opportunityRate"`
	DepreciationRate float64 `json:"depreciationRate"`
}

// DefaultFinancialRates returns 2% storage, 1% opportunity and 0.5% depreciation per month
func DefaultFinancialRates() FinancialRates {
	return FinancialRates{
		StorageRate:      0.02,
		OpportunityRate:  0.01,
		DepreciationRate: 0.005,
	}
}

// FinancialImpact is the capital and carrying-cost breakdown of held stock
type FinancialImpact struct {
	TiedUpCapital    float64 `json:"tiedUpCapital"`
	StorageCosts     float64 `json:"storageCosts"`
	OpportunityCost  float64 `json:"opportunityCost"`
	DepreciationRisk float64 `json:"depreciationRisk"`
	TotalImpact      float64 `json:"totalImpact"`
}

// Add returns the component-wise sum of two impacts
func (f FinancialImpact) Add(o FinancialImpact) FinancialImpact {
	return FinancialImpact{
		TiedUpCapital:    f.TiedUpCapital + o.TiedUpCapital,
		StorageCosts:     f.StorageCosts + o.StorageCosts,
		OpportunityCost:  f.OpportunityCost + o.OpportunityCost,
		DepreciationRisk: f.DepreciationRisk + o.DepreciationRisk,
		TotalImpact:      f.TotalImpact + o.TotalImpact,
	}
}

// CalculateFinancialImpact applies the default rates
func CalculateFinancialImpact(stockValue, monthsInStock float64) FinancialImpact {
	return CalculateFinancialImpactWithRates(stockValue, monthsInStock, DefaultFinancialRates())
}

// CalculateFinancialImpactWithRates computes the impact in decimal arithmetic.
// Negative durations are clamped to zero.
func CalculateFinancialImpactWithRates(stockValue, monthsInStock float64, rates FinancialRates) FinancialImpact {
	if monthsInStock < 0 {
		monthsInStock = 0
	}

	value := decimal.NewFromFloat(stockValue)
	months := decimal.NewFromFloat(monthsInStock)
	cost := func(rate float64) decimal.Decimal {
		return value.Mul(decimal.NewFromFloat(rate)).Mul(months)
	}

	storage := cost(rates.StorageRate)
	opportunity := cost(rates.OpportunityRate)
	depreciation := cost(rates.DepreciationRate)
	total := value.Add(storage).Add(opportunity).Add(depreciation)

	return FinancialImpact{
		TiedUpCapital:    value.InexactFloat64(),
		StorageCosts:     storage.InexactFloat64(),
		OpportunityCost:  opportunity.InexactFloat64(),
		DepreciationRisk: depreciation.InexactFloat64(),
		TotalImpact:      total.InexactFloat64(),
	}
}
