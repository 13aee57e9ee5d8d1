package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	domainRepo "github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"gorm.io/gorm"
)

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) domainRepo.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context, filter entity.InventoryFilter) ([]entity.InventoryRecord, error) {
	var items []entity.InventoryItem
	err := r.db.WithContext(ctx).
		Scopes(InventoryFilterScope(filter)).
		Order("product_name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return toInventoryRecords(items), nil
}

func (r *inventoryRepository) ListPage(ctx context.Context, filter entity.InventoryFilter, params *pagination.PaginationParams) ([]entity.InventoryRecord, int64, error) {
	var items []entity.InventoryItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).Scopes(InventoryFilterScope(filter))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("product_name ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return toInventoryRecords(items), total, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var item entity.InventoryItem
	err = r.db.WithContext(ctx).First(&item, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := item.ToRecord()
	return &rec, nil
}

func (r *inventoryRepository) GetByName(ctx context.Context, name string) (*entity.InventoryRecord, error) {
	var item entity.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "product_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := item.ToRecord()
	return &rec, nil
}

func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryRecord) error {
	var row entity.InventoryItem
	row.Apply(*item)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	item.ID = row.ID.String()
	return nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *entity.InventoryRecord) error {
	uid, err := uuid.Parse(item.ID)
	if err != nil {
		return domainRepo.ErrNotFound
	}

	var row entity.InventoryItem
	row.Apply(*item)
	// Select("*") so zeroed fields are written too
	res := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", uid).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domainRepo.ErrNotFound
	}

	res := r.db.WithContext(ctx).Delete(&entity.InventoryItem{}, "id = ?", uid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domainRepo.ErrNotFound
	}

	res := r.db.WithContext(ctx).Model(&entity.InventoryItem{}).
		Where("id = ?", uid).
		Update("unit_price", entity.PriceToCents(price))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

func toInventoryRecords(items []entity.InventoryItem) []entity.InventoryRecord {
	records := make([]entity.InventoryRecord, 0, len(items))
	for i := range items {
		records = append(records, items[i].ToRecord())
	}
	return records
}
