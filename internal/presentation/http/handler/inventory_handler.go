package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/flowpilot-api/internal/application/service"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/enum"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/request"
	"github.com/sangkips/flowpilot-api/internal/presentation/http/dto/response"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

// InventoryHandler handles inventory reads, edits and price adjustments
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List handles listing inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	var q request.InventoryListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := entity.InventoryFilter{Category: q.Category, WarehouseLocation: q.Warehouse}
	params := &pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage}

	result, err := h.inventoryService.List(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Inventory retrieved successfully", result)
}

// Get handles getting a single inventory item
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", item)
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req request.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), toInventoryRecord(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", item)
}

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req request.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), c.Param("id"), toInventoryRecord(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", item)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdatePrice handles PUT /inventory/price
func (h *InventoryHandler) UpdatePrice(c *gin.Context) {
	var req request.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	change, err := h.inventoryService.UpdatePrice(c.Request.Context(), req.ProductID, req.NewPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price updated successfully", change)
}

// BulkUpdatePrices handles PUT /inventory/prices
func (h *InventoryHandler) BulkUpdatePrices(c *gin.Context) {
	var req request.BulkUpdatePricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	updates := make([]service.PriceUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, service.PriceUpdate{ProductID: u.ProductID, NewPrice: u.NewPrice})
	}

	results := h.inventoryService.BulkUpdatePrices(c.Request.Context(), updates)
	response.OK(c, "Price updates processed", results)
}

// DeadstockAction handles POST /inventory/deadstock-actions
func (h *InventoryHandler) DeadstockAction(c *gin.Context) {
	var req request.DeadstockActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	results, err := h.inventoryService.ApplyDeadstockAction(c.Request.Context(), service.DeadstockAction{
		Action:             req.Action,
		ProductIDs:         req.ProductIDs,
		DiscountPercentage: req.DiscountPercentage,
		NewPrice:           req.NewPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Deadstock action processed", results)
}

func toInventoryRecord(req request.InventoryItemRequest) entity.InventoryRecord {
	return entity.InventoryRecord{
		ProductName:          req.ProductName,
		Category:             req.Category,
		CurrentStock:         req.CurrentStock,
		UnitPrice:            req.UnitPrice,
		WarehouseLocation:    req.WarehouseLocation,
		StockAlertLevel:      req.StockAlertLevel,
		SupplierLeadTimeDays: req.SupplierLeadTimeDays,
		SupplierReliability:  req.SupplierReliability,
		LifecycleStage:       enum.LifecycleStage(req.LifecycleStage),
	}
}
