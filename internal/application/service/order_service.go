package service

import (
	"context"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/apperror"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

// OrderService exposes the normalised order history
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// List returns a page of orders, newest first
func (s *OrderService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.OrderRecord], error) {
	params.Validate()
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStoreError("list orders", err)
	}
	return pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetByID returns one normalised order
func (s *OrderService) GetByID(ctx context.Context, id string) (*entity.OrderRecord, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStoreError("get order", err)
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}
