package request

// InventoryListQuery filters the inventory listing
type InventoryListQuery struct {
	Category  string `form:"category"`
	Warehouse string `form:"warehouse"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// InventoryItemRequest creates a product or replaces its editable fields
type InventoryItemRequest struct {
	ProductName          string  `json:"productName" binding:"required,max=255"`
	Category             string  `json:"category" binding:"max=100"`
	CurrentStock         int     `json:"currentStock" binding:"gte=0"`
	UnitPrice            float64 `json:"unitPrice" binding:"gte=0"`
	WarehouseLocation    string  `json:"warehouseLocation" binding:"max=100"`
	StockAlertLevel      int     `json:"stockAlertLevel" binding:"gte=0"`
	SupplierLeadTimeDays int     `json:"supplierLeadTimeDays" binding:"gte=0"`
	SupplierReliability  float64 `json:"supplierReliability" binding:"gte=0,lte=1"`
	LifecycleStage       string  `json:"lifecycleStage" binding:"omitempty,oneof=new growth maturity decline"`
}

// UpdatePriceRequest sets the unit price of one product
type UpdatePriceRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	NewPrice  float64 `json:"newPrice" binding:"required,gt=0"`
}

// BulkUpdatePricesRequest sets the unit price of several products
type BulkUpdatePricesRequest struct {
	Updates []UpdatePriceRequest `json:"updates" binding:"required,min=1,max=500,dive"`
}

// DeadstockActionRequest applies one action to a set of deadstock products
type DeadstockActionRequest struct {
	Action             string   `json:"action" binding:"required"`
	ProductIDs         []string `json:"productIds" binding:"required,min=1"`
	DiscountPercentage float64  `json:"discountPercentage" binding:"omitempty,gte=0,lte=100"`
	NewPrice           float64  `json:"newPrice" binding:"omitempty,gte=0"`
}
