package repository

import (
	"context"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

// OrderRepository defines the read side of the order store used by analytics.
// Implementations return canonical records; malformed documents are normalised
// or skipped, never surfaced as errors.
type OrderRepository interface {
	ListAll(ctx context.Context) ([]entity.OrderRecord, error)
	// ListSince returns dated orders on or after since; undated orders are excluded
	ListSince(ctx context.Context, since time.Time) ([]entity.OrderRecord, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.OrderRecord, int64, error)
	// GetByID returns nil, nil when the order does not exist
	GetByID(ctx context.Context, id string) (*entity.OrderRecord, error)
}
