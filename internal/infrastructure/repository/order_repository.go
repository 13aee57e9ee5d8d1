package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	domainRepo "github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListAll(ctx context.Context) ([]entity.OrderRecord, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Order("order_date ASC NULLS LAST, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return toOrderRecords(orders), nil
}

func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]entity.OrderRecord, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_date >= ?", since).
		Order("order_date ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return toOrderRecords(orders), nil
}

func (r *orderRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.OrderRecord, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lines").
		Order("order_date DESC NULLS LAST, created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return toOrderRecords(orders), total, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.OrderRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var order entity.Order
	err = r.db.WithContext(ctx).Preload("Lines").First(&order, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := order.ToRecord()
	return &rec, nil
}

func toOrderRecords(orders []entity.Order) []entity.OrderRecord {
	records := make([]entity.OrderRecord, 0, len(orders))
	for i := range orders {
		records = append(records, orders[i].ToRecord())
	}
	return records
}
