package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/flowpilot-api/internal/domain/entity"
	"github.com/sangkips/flowpilot-api/pkg/apperror"
	"github.com/sangkips/flowpilot-api/pkg/metrics"
	"github.com/sangkips/flowpilot-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService(repo *fakeInventoryRepo) (*InventoryService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry(), "test")
	return NewInventoryService(repo, m), m
}

func TestInventoryService_UpdatePrice(t *testing.T) {
	repo := &fakeInventoryRepo{items: fixtureInventory()}
	svc, m := newInventoryService(repo)

	change, err := svc.UpdatePrice(context.Background(), "lamp", 120)
	require.NoError(t, err)
	assert.Equal(t, entity.PriceChange{
		ProductID:          "lamp",
		Product:            "Desk Lamp",
		OldPrice:           100,
		NewPrice:           120,
		PriceChange:        20,
		PriceChangePercent: "20.00",
	}, *change)
	assert.Equal(t, 120.0, repo.items[0].UnitPrice)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PriceUpdates.WithLabelValues("applied")))
}

func TestInventoryService_UpdatePrice_Errors(t *testing.T) {
	tests := []struct {
		name  string
		repo  *fakeInventoryRepo
		id    string
		price float64
		code  int
	}{
		{"zero price", &fakeInventoryRepo{items: fixtureInventory()}, "lamp", 0, http.StatusBadRequest},
		{"negative price", &fakeInventoryRepo{items: fixtureInventory()}, "lamp", -5, http.StatusBadRequest},
		{"unknown product", &fakeInventoryRepo{items: fixtureInventory()}, "nope", 10, http.StatusNotFound},
		{"store down", &fakeInventoryRepo{err: errors.New("down")}, "lamp", 10, http.StatusServiceUnavailable},
		{"write failed", &fakeInventoryRepo{items: fixtureInventory(), updateErr: errors.New("down")}, "lamp", 10, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newInventoryService(tt.repo)
			_, err := svc.UpdatePrice(context.Background(), tt.id, tt.price)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetAppError(err).Code)
		})
	}
}

func TestInventoryService_UpdatePrice_ZeroOldPrice(t *testing.T) {
	svc, _ := newInventoryService(&fakeInventoryRepo{items: fixtureInventory()})

	change, err := svc.UpdatePrice(context.Background(), "free", 5)
	require.NoError(t, err)
	assert.Equal(t, "N/A", change.PriceChangePercent)
}

func TestInventoryService_BulkUpdatePrices(t *testing.T) {
	svc, _ := newInventoryService(&fakeInventoryRepo{items: fixtureInventory()})

	results := svc.BulkUpdatePrices(context.Background(), []PriceUpdate{
		{ProductID: "lamp", NewPrice: 90},
		{ProductID: "nope", NewPrice: 10},
		{ProductID: "mug", NewPrice: -1},
	})

	require.Len(t, results, 3)
	require.NotNil(t, results[0].Change)
	assert.Equal(t, "-10.00", results[0].Change.PriceChangePercent)
	assert.Equal(t, "Product not found", results[1].Error)
	assert.Nil(t, results[1].Change)
	assert.NotEmpty(t, results[2].Error)
}

func TestInventoryService_ApplyDeadstockAction(t *testing.T) {
	repo := &fakeInventoryRepo{items: fixtureInventory()}
	svc, _ := newInventoryService(repo)
	ctx := context.Background()

	results, err := svc.ApplyDeadstockAction(ctx, DeadstockAction{
		Action:             ActionApplyDiscount,
		ProductIDs:         []string{"lamp", "missing"},
		DiscountPercentage: 25,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Applied 25% discount", results[0].Message)
	assert.Equal(t, 100.0, *results[0].OldPrice)
	assert.Equal(t, 75.0, *results[0].NewPrice)
	assert.Equal(t, 75.0, repo.items[0].UnitPrice)
	assert.Equal(t, "Product not found", results[1].Error)

	results, err = svc.ApplyDeadstockAction(ctx, DeadstockAction{Action: ActionSetPrice, ProductIDs: []string{"mug"}})
	require.NoError(t, err)
	assert.Equal(t, "New price required", results[0].Error)

	results, err = svc.ApplyDeadstockAction(ctx, DeadstockAction{Action: ActionMarkForLiquidation, ProductIDs: []string{"mug"}})
	require.NoError(t, err)
	assert.Contains(t, results[0].Message, "Marked for liquidation")
	assert.Nil(t, results[0].NewPrice)
	assert.Equal(t, 20.0, repo.items[1].UnitPrice)

	_, err = svc.ApplyDeadstockAction(ctx, DeadstockAction{Action: "burn"})
	assert.Equal(t, http.StatusBadRequest, apperror.GetAppError(err).Code)
}

func TestInventoryService_List(t *testing.T) {
	svc, _ := newInventoryService(&fakeInventoryRepo{items: fixtureInventory()})

	res, err := svc.List(context.Background(), entity.InventoryFilter{Category: "Home"}, &pagination.PaginationParams{Page: 1, PerPage: 1})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, int64(2), res.Pagination.Total)
	assert.True(t, res.Pagination.HasNext)
}

func TestOrderService_List(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{orders: fixtureOrders()})

	res, err := svc.List(context.Background(), &pagination.PaginationParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Pagination.TotalPages)

	_, err = NewOrderService(&fakeOrderRepo{err: errors.New("down")}).List(context.Background(), pagination.DefaultPagination())
	assert.Equal(t, http.StatusServiceUnavailable, apperror.GetAppError(err).Code)
}

func TestInventoryService_Create(t *testing.T) {
	repo := &fakeInventoryRepo{items: fixtureInventory()}
	svc, _ := newInventoryService(repo)

	created, err := svc.Create(context.Background(), entity.InventoryRecord{
		ID:           "client-chosen",
		ProductName:  "Chair",
		Category:     "Home",
		CurrentStock: 4,
		UnitPrice:    75,
	})
	require.NoError(t, err)
	assert.Equal(t, "item-4", created.ID)
	require.Len(t, repo.items, 4)
	assert.Equal(t, "Chair", repo.items[3].ProductName)

	_, err = svc.Create(context.Background(), entity.InventoryRecord{ProductName: "Mug", UnitPrice: 5})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)
	assert.Len(t, repo.items, 4)
}

func TestInventoryService_Update(t *testing.T) {
	repo := &fakeInventoryRepo{items: fixtureInventory()}
	svc, _ := newInventoryService(repo)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "lamp", entity.InventoryRecord{ProductName: "Desk Lamp", Category: "Lighting", CurrentStock: 12, UnitPrice: 95})
	require.NoError(t, err)
	assert.Equal(t, "lamp", updated.ID)
	assert.Equal(t, "Lighting", repo.items[0].Category)
	assert.Equal(t, 12, repo.items[0].CurrentStock)

	tests := []struct {
		name string
		repo *fakeInventoryRepo
		id   string
		item entity.InventoryRecord
		code int
	}{
		{"unknown product", &fakeInventoryRepo{items: fixtureInventory()}, "nope", entity.InventoryRecord{ProductName: "Nope"}, http.StatusNotFound},
		{"name taken", &fakeInventoryRepo{items: fixtureInventory()}, "lamp", entity.InventoryRecord{ProductName: "Mug"}, http.StatusConflict},
		{"store down", &fakeInventoryRepo{err: errors.New("down")}, "lamp", entity.InventoryRecord{ProductName: "Desk Lamp"}, http.StatusServiceUnavailable},
		{"write failed", &fakeInventoryRepo{items: fixtureInventory(), updateErr: errors.New("down")}, "lamp", entity.InventoryRecord{ProductName: "Desk Lamp"}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newInventoryService(tt.repo)
			_, err := svc.Update(ctx, tt.id, tt.item)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetAppError(err).Code)
		})
	}
}

func TestInventoryService_Delete(t *testing.T) {
	repo := &fakeInventoryRepo{items: fixtureInventory()}
	svc, _ := newInventoryService(repo)

	require.NoError(t, svc.Delete(context.Background(), "mug"))
	assert.Len(t, repo.items, 2)

	err := svc.Delete(context.Background(), "mug")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)
}
