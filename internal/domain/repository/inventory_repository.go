package repository

import (
	"context"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

// InventoryRepository defines the inventory store operations
type InventoryRepository interface {
	List(ctx context.Context, filter entity.InventoryFilter) ([]entity.InventoryRecord, error)
	ListPage(ctx context.Context, filter entity.InventoryFilter, params *pagination.PaginationParams) ([]entity.InventoryRecord, int64, error)
	// GetByID returns nil, nil when the item does not exist
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	// GetByName returns nil, nil when no item carries the name
	GetByName(ctx context.Context, name string) (*entity.InventoryRecord, error)
	// Create stores the item and sets its ID
	Create(ctx context.Context, item *entity.InventoryRecord) error
	// Update and Delete return ErrNotFound when the item does not exist
	Update(ctx context.Context, item *entity.InventoryRecord) error
	Delete(ctx context.Context, id string) error
	UpdatePrice(ctx context.Context, id string, price float64) error
}
