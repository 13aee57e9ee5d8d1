package entity

import (
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/enum"
)

// UnknownCustomer is the name used when an order carries no customer name
const UnknownCustomer = "Unknown"

// LineItem is a single product line of an order
type LineItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// Valid reports whether the line can take part in aggregation
func (l LineItem) Valid() bool {
	return l.ProductName != "" && l.Quantity >= 0
}

// OrderRecord is the canonical, read-only shape of an order as seen by analytics.
// Storage adapters normalise their documents/rows into this shape.
type OrderRecord struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail,omitempty"`
	Status        enum.OrderStatus `json:"status,omitempty"`
	Items         []LineItem       `json:"lineItems"`
}

// HasDate reports whether the order carried a parseable date
func (o OrderRecord) HasDate() bool {
	return !o.Date.IsZero()
}

// Day returns the calendar date of the order truncated to midnight UTC
func (o OrderRecord) Day() time.Time {
	return TruncateDay(o.Date)
}

// Customer returns the customer name, or UnknownCustomer when missing
func (o OrderRecord) Customer() string {
	if o.CustomerName == "" {
		return UnknownCustomer
	}
	return o.CustomerName
}

// TotalQuantity sums the quantities of all valid lines
func (o OrderRecord) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		if item.Valid() {
			total += item.Quantity
		}
	}
	return total
}

// TruncateDay drops the time-of-day component, keeping the calendar date in UTC
func TruncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
