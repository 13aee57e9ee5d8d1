package analytics

import (
	"sort"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
)

// ProductSalesSummary is the sales record of one product across all orders
type ProductSalesSummary struct {
	TotalSold    int                 `json:"totalSold"`
	OrderCount   int                 `json:"orderCount"`
	LastSaleDate time.Time           `json:"lastSaleDate"`
	History      []SalesHistoryEntry `json:"salesHistory"`
}

// SalesIndex maps a product name to its sales summary
type SalesIndex map[string]*ProductSalesSummary

// BuildSalesIndex scans the orders once and groups valid lines by product name.
// Lines without a name or with a negative quantity are skipped. Undated orders
// count towards TotalSold but are left out of the dated history.
func BuildSalesIndex(orders []entity.OrderRecord) SalesIndex {
	index := make(SalesIndex)
	for _, order := range orders {
		for _, line := range order.Items {
			if !line.Valid() {
				continue
			}

			summary, ok := index[line.ProductName]
			if !ok {
				summary = &ProductSalesSummary{History: []SalesHistoryEntry{}}
				index[line.ProductName] = summary
			}

			summary.TotalSold += line.Quantity
			summary.OrderCount++
			if !order.HasDate() {
				continue
			}

			summary.History = append(summary.History, SalesHistoryEntry{
				Date:     order.Date,
				Quantity: line.Quantity,
			})
			if order.Date.After(summary.LastSaleDate) {
				summary.LastSaleDate = order.Date
			}
		}
	}
	return index
}

// History returns the dated sales history of a product, never nil
func (idx SalesIndex) History(productName string) []SalesHistoryEntry {
	if summary, ok := idx[productName]; ok {
		return summary.History
	}
	return []SalesHistoryEntry{}
}

// Totals returns every product with its total units sold, ordered by units
// descending. Equal totals keep the product name order.
func (idx SalesIndex) Totals() []NamedQuantity {
	totals := make([]NamedQuantity, 0, len(idx))
	for name, summary := range idx {
		totals = append(totals, NamedQuantity{Name: name, Quantity: summary.TotalSold})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Quantity != totals[j].Quantity {
			return totals[i].Quantity > totals[j].Quantity
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// NamedQuantity pairs a product name with a unit count
type NamedQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
