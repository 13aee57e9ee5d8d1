package enum

import "strings"

// OrderStatus is the fulfilment status recorded on an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending fulfillment"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusUnknown   OrderStatus = ""
)

// ParseOrderStatus normalises the free-form status strings written by the order store
func ParseOrderStatus(s string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending fulfillment", "pending", "pending_fulfillment":
		return OrderStatusPending
	case "fulfilled", "complete", "completed":
		return OrderStatusFulfilled
	case "cancelled", "canceled", "cancel":
		return OrderStatusCancelled
	}
	return OrderStatusUnknown
}
