package mongorepo

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field aliases seen in the order and inventory collections, in lookup order
var (
	customerNameKeys  = []string{"name", "Customer_Name", "customer_name", "customerName"}
	customerEmailKeys = []string{"email", "Email", "customer_email", "customerEmail"}
	orderDateKeys     = []string{"date", "Date", "order_date", "orderDate", "createdAt"}
	orderStatusKeys   = []string{"status", "Status", "order_status"}
	lineItemKeys      = []string{"products", "items", "Products", "line_items", "lineItems"}
	productNameKeys   = []string{"name", "productName", "product_name", "product", "Product"}
	quantityKeys      = []string{"quantity", "Quantity", "qty"}

	inventoryNameKeys     = []string{"name", "productName", "product_name"}
	inventoryStockKeys    = []string{"quantity", "current_stock", "currentStock", "stock"}
	inventoryPriceKeys    = []string{"price", "unit_price", "unitPrice"}
	inventoryAlertKeys    = []string{"stock_alert_level", "stockAlertLevel", "alert_level"}
	inventoryLocationKeys = []string{"warehouse_location", "warehouseLocation", "location"}
)

// dateLayouts are tried in order for string dates
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
}

// NormalizeOrder maps a raw order document onto the canonical order record.
// Missing or malformed fields degrade to zero values. Lines without a product
// name or without a parseable quantity are dropped.
func NormalizeOrder(doc bson.M) entity.OrderRecord {
	rec := entity.OrderRecord{
		ID:            idString(doc["_id"]),
		CustomerName:  strings.TrimSpace(firstString(doc, customerNameKeys)),
		CustomerEmail: strings.TrimSpace(firstString(doc, customerEmailKeys)),
		Status:        enum.ParseOrderStatus(firstString(doc, orderStatusKeys)),
		Items:         []entity.LineItem{},
	}
	if v, ok := first(doc, orderDateKeys); ok {
		rec.Date = toTime(v)
	}

	raw, _ := first(doc, lineItemKeys)
	for _, el := range asSlice(raw) {
		line, ok := asMap(el)
		if !ok {
			continue
		}
		item := entity.LineItem{
			ProductName: strings.TrimSpace(firstString(line, productNameKeys)),
		}
		v, ok := first(line, quantityKeys)
		if !ok {
			continue
		}
		if item.Quantity, ok = parseInt(v); !ok || !item.Valid() {
			continue
		}
		rec.Items = append(rec.Items, item)
	}
	return rec
}

// NormalizeInventory maps a raw inventory document onto the canonical inventory record
func NormalizeInventory(doc bson.M) entity.InventoryRecord {
	rec := entity.InventoryRecord{
		ID:                idString(doc["_id"]),
		ProductName:       strings.TrimSpace(firstString(doc, inventoryNameKeys)),
		Category:          strings.TrimSpace(firstString(doc, []string{"category", "Category"})),
		WarehouseLocation: strings.TrimSpace(firstString(doc, inventoryLocationKeys)),
		LifecycleStage:    enum.LifecycleStage(strings.ToLower(firstString(doc, []string{"lifecycle_stage", "lifecycleStage"}))),
	}
	if v, ok := first(doc, inventoryStockKeys); ok {
		rec.CurrentStock = toInt(v)
	}
	if v, ok := first(doc, inventoryPriceKeys); ok {
		rec.UnitPrice = toFloat(v)
	}
	if v, ok := first(doc, inventoryAlertKeys); ok {
		rec.StockAlertLevel = toInt(v)
	}
	if v, ok := first(doc, []string{"supplier_lead_time_days", "leadTimeDays"}); ok {
		rec.SupplierLeadTimeDays = toInt(v)
	}
	if v, ok := first(doc, []string{"supplier_reliability", "reliability"}); ok {
		rec.SupplierReliability = toFloat(v)
	}
	return rec
}

// InventoryDocument renders a record under the first alias of each field,
// which is the one NormalizeInventory reads back first
func InventoryDocument(rec entity.InventoryRecord) bson.M {
	return bson.M{
		inventoryNameKeys[0]:      rec.ProductName,
		"category":                rec.Category,
		inventoryStockKeys[0]:     rec.CurrentStock,
		inventoryPriceKeys[0]:     rec.UnitPrice,
		inventoryLocationKeys[0]:  rec.WarehouseLocation,
		inventoryAlertKeys[0]:     rec.StockAlertLevel,
		"supplier_lead_time_days": rec.SupplierLeadTimeDays,
		"supplier_reliability":    rec.SupplierReliability,
		"lifecycle_stage":         string(rec.LifecycleStage),
	}
}

func first(doc bson.M, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(doc bson.M, keys []string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return strings.TrimSpace(toString(id))
	}
}

func asMap(v interface{}) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]interface{}:
		return bson.M(m), true
	case bson.D:
		return m.Map(), true
	}
	return nil, false
}

func asSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case bson.A:
		return s
	case []interface{}:
		return s
	case []bson.M:
		out := make([]interface{}, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

// parseFloat reports false for nil, unsupported types, text that is not a
// number and non-finite values.
func parseFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(n, ",", "")), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInt(v interface{}) (int, bool) {
	f, ok := parseFloat(v)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

func toFloat(v interface{}) float64 {
	f, _ := parseFloat(v)
	return f
}

func toInt(v interface{}) int {
	n, _ := parseInt(v)
	return n
}

// toTime parses BSON dates and the string layouts the order store has used.
// Anything unparseable yields the zero time, which marks the order undated.
func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC()
			}
		}
	}
	return time.Time{}
}
