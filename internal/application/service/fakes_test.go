package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/internal/domain/repository"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
)

type fakeOrderRepo struct {
	orders []entity.OrderRecord
	err    error
	calls  int
}

func (r *fakeOrderRepo) ListAll(context.Context) ([]entity.OrderRecord, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.orders, nil
}

func (r *fakeOrderRepo) ListSince(_ context.Context, since time.Time) ([]entity.OrderRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.OrderRecord
	for _, o := range r.orders {
		if o.HasDate() && !o.Date.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context, params *pagination.PaginationParams) ([]entity.OrderRecord, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	page := pagination.Paginate(r.orders, params)
	return page.Items, int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.OrderRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, o := range r.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, nil
}

type fakeInventoryRepo struct {
	mu        sync.Mutex
	items     []entity.InventoryRecord
	err       error
	updateErr error
}

func (r *fakeInventoryRepo) List(_ context.Context, filter entity.InventoryFilter) ([]entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.InventoryRecord, 0, len(r.items))
	for _, it := range r.items {
		if filter.Matches(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) ListPage(ctx context.Context, filter entity.InventoryFilter, params *pagination.PaginationParams) ([]entity.InventoryRecord, int64, error) {
	all, err := r.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	page := pagination.Paginate(all, params)
	return page.Items, int64(len(all)), nil
}

func (r *fakeInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, it := range r.items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) GetByName(_ context.Context, name string) (*entity.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, it := range r.items {
		if it.ProductName == name {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *entity.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	item.ID = fmt.Sprintf("item-%d", len(r.items)+1)
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, item *entity.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeInventoryRepo) UpdatePrice(_ context.Context, id string, price float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].UnitPrice = price
			return nil
		}
	}
	return repository.ErrNotFound
}

var serviceNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return serviceNow.AddDate(0, 0, -n)
}

func fixtureInventory() []entity.InventoryRecord {
	return []entity.InventoryRecord{
		{ID: "lamp", ProductName: "Desk Lamp", Category: "Home", CurrentStock: 40, UnitPrice: 100, WarehouseLocation: "A", StockAlertLevel: 5},
		{ID: "mug", ProductName: "Mug", Category: "Home", CurrentStock: 10, UnitPrice: 20, WarehouseLocation: "B", StockAlertLevel: 5},
		{ID: "free", ProductName: "Sticker", Category: "Promo", CurrentStock: 100, UnitPrice: 0, WarehouseLocation: "B", StockAlertLevel: 0},
	}
}

func fixtureOrders() []entity.OrderRecord {
	return []entity.OrderRecord{
		{ID: "1", Date: daysAgo(1), CustomerName: "Ada", Items: []entity.LineItem{{ProductName: "Mug", Quantity: 2}}},
		{ID: "2", Date: daysAgo(2), CustomerName: "Ben", Items: []entity.LineItem{{ProductName: "Mug", Quantity: 1}, {ProductName: "Ghost", Quantity: 1}}},
		{ID: "3", Date: daysAgo(3), CustomerName: "Ada", Items: []entity.LineItem{{ProductName: "Desk Lamp", Quantity: 1}}},
	}
}
