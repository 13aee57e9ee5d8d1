package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sangkips/flowpilot-api/internal/domain/analytics"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/apperror"
	"github.com/sangkips/flowpilot-api/pkg/logger"
	"github.com/sangkips/flowpilot-api/pkg/metrics"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"go.uber.org/zap"
)

// Deadstock actions accepted by ApplyDeadstockAction
const (
	ActionApplyDiscount      = "apply_discount"
	ActionSetPrice           = "set_price"
	ActionMarkForLiquidation = "mark_for_liquidation"
)

// InventoryService handles inventory reads and price adjustments
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
	metrics       *metrics.Metrics
}

// NewInventoryService creates a new inventory service
func NewInventoryService(inventoryRepo repository.InventoryRepository, m *metrics.Metrics) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo, metrics: m}
}

// PriceUpdate is one requested price change
type PriceUpdate struct {
	ProductID string
	NewPrice  float64
}

// PriceUpdateResult is the outcome of one entry of a bulk update
type PriceUpdateResult struct {
	ProductID string              `json:"productId"`
	Change    *entity.PriceChange `json:"change,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// DeadstockAction is a bulk action over deadstock items
type DeadstockAction struct {
	Action             string
	ProductIDs         []string
	DiscountPercentage float64
	NewPrice           float64
}

// DeadstockActionResult is the outcome of an action on one product
type DeadstockActionResult struct {
	ProductID string   `json:"productId"`
	Message   string   `json:"message,omitempty"`
	OldPrice  *float64 `json:"oldPrice,omitempty"`
	NewPrice  *float64 `json:"newPrice,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// List returns a page of inventory records
func (s *InventoryService) List(ctx context.Context, filter entity.InventoryFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.InventoryRecord], error) {
	params.Validate()
	items, total, err := s.inventoryRepo.ListPage(ctx, filter, params)
	if err != nil {
		return nil, apperror.NewStoreError("list inventory", err)
	}
	return pagination.NewPaginatedResult(items, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetByID returns one inventory record
func (s *InventoryService) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	item, err := s.inventoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("get inventory item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return item, nil
}

// Create adds a product to the inventory. Product names are the join key
// against order lines, so a second item with the same name is rejected.
func (s *InventoryService) Create(ctx context.Context, item entity.InventoryRecord) (*entity.InventoryRecord, error) {
	if err := s.ensureNameFree(ctx, item.ProductName, ""); err != nil {
		return nil, err
	}

	item.ID = ""
	if err := s.inventoryRepo.Create(ctx, &item); err != nil {
		return nil, apperror.NewStoreError("create inventory item", err)
	}

	logger.FromContext(ctx).Info("Inventory item created",
		zap.String("product_id", item.ID),
		zap.String("product", item.ProductName),
	)
	return &item, nil
}

// Update replaces the editable fields of an existing product
func (s *InventoryService) Update(ctx context.Context, id string, item entity.InventoryRecord) (*entity.InventoryRecord, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, item.ProductName, id); err != nil {
		return nil, err
	}

	item.ID = id
	if err := s.inventoryRepo.Update(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, apperror.NewStoreError("update inventory item", err)
	}

	logger.FromContext(ctx).Info("Inventory item updated", zap.String("product_id", id))
	return &item, nil
}

// Delete removes a product from the inventory
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.inventoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NewNotFoundError("Product")
		}
		return apperror.NewStoreError("delete inventory item", err)
	}

	logger.FromContext(ctx).Info("Inventory item deleted", zap.String("product_id", id))
	return nil
}

func (s *InventoryService) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.inventoryRepo.GetByName(ctx, name)
	if err != nil {
		return apperror.NewStoreError("get inventory item by name", err)
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewConflictError("Product with this name already exists")
	}
	return nil
}

// UpdatePrice sets a new unit price and reports the change
func (s *InventoryService) UpdatePrice(ctx context.Context, id string, newPrice float64) (*entity.PriceChange, error) {
	if newPrice <= 0 || math.IsNaN(newPrice) || math.IsInf(newPrice, 0) {
		s.metrics.PriceUpdates.WithLabelValues("rejected").Inc()
		return nil, apperror.NewBadRequestError("newPrice must be a positive number")
	}

	item, err := s.GetByID(ctx, id)
	if err != nil {
		s.metrics.PriceUpdates.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.inventoryRepo.UpdatePrice(ctx, id, newPrice); err != nil {
		s.metrics.PriceUpdates.WithLabelValues("failed").Inc()
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Product")
		}
		return nil, apperror.NewStoreError("update price", err)
	}

	change := analytics.NewPriceChange(*item, newPrice)
	s.metrics.PriceUpdates.WithLabelValues("applied").Inc()
	logger.FromContext(ctx).Info("Price updated",
		zap.String("product_id", id),
		zap.String("product", item.ProductName),
		zap.Float64("old_price", change.OldPrice),
		zap.Float64("new_price", change.NewPrice),
	)
	return &change, nil
}

// BulkUpdatePrices applies each update independently; failures are reported per entry
func (s *InventoryService) BulkUpdatePrices(ctx context.Context, updates []PriceUpdate) []PriceUpdateResult {
	results := make([]PriceUpdateResult, 0, len(updates))
	for _, u := range updates {
		res := PriceUpdateResult{ProductID: u.ProductID}
		change, err := s.UpdatePrice(ctx, u.ProductID, u.NewPrice)
		if err != nil {
			res.Error = apperror.GetAppError(err).Message
		} else {
			res.Change = change
		}
		results = append(results, res)
	}
	return results
}

// ApplyDeadstockAction runs a discount, price or liquidation action over the given products
func (s *InventoryService) ApplyDeadstockAction(ctx context.Context, a DeadstockAction) ([]DeadstockActionResult, error) {
	switch a.Action {
	case ActionApplyDiscount, ActionSetPrice, ActionMarkForLiquidation:
	default:
		return nil, apperror.NewBadRequestError("Invalid action")
	}

	results := make([]DeadstockActionResult, 0, len(a.ProductIDs))
	for _, id := range a.ProductIDs {
		results = append(results, s.applyOne(ctx, a, id))
	}
	return results, nil
}

func (s *InventoryService) applyOne(ctx context.Context, a DeadstockAction, id string) DeadstockActionResult {
	res := DeadstockActionResult{ProductID: id}

	item, err := s.GetByID(ctx, id)
	if err != nil {
		res.Error = apperror.GetAppError(err).Message
		return res
	}

	var target float64
	switch a.Action {
	case ActionMarkForLiquidation:
		logger.FromContext(ctx).Info("Product marked for liquidation", zap.String("product_id", id), zap.String("product", item.ProductName))
		res.Message = "Marked for liquidation - implement clearance strategy"
		return res
	case ActionApplyDiscount:
		if a.DiscountPercentage <= 0 || a.DiscountPercentage >= 100 {
			res.Error = "Discount percentage required"
			return res
		}
		target = math.Round(item.UnitPrice * (1 - a.DiscountPercentage/100))
		res.Message = fmt.Sprintf("Applied %g%% discount", a.DiscountPercentage)
	case ActionSetPrice:
		if a.NewPrice <= 0 {
			res.Error = "New price required"
			return res
		}
		target = a.NewPrice
		res.Message = "Price updated successfully"
	}

	change, err := s.UpdatePrice(ctx, id, target)
	if err != nil {
		res.Message = ""
		res.Error = apperror.GetAppError(err).Message
		return res
	}
	res.OldPrice = &change.OldPrice
	res.NewPrice = &change.NewPrice
	return res
}
