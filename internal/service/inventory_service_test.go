package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyath7/small-shop-system/internal/dto"
)

func TestLowStockFiltersAndSorts(t *testing.T) {
	repo := &stubInventoryRepo{rows: []dto.InventoryRow{
		{ProductID: 1, Name: "Milk", StockStatus: dto.StockStatusOK, TotalQuantity: 50},
		{ProductID: 2, Name: "Zucchini", StockStatus: dto.StockStatusLow, TotalQuantity: 3},
		{ProductID: 3, Name: "Bread", StockStatus: dto.StockStatusOutOfStock, TotalQuantity: 0},
		{ProductID: 4, Name: "Apples", StockStatus: dto.StockStatusLow, TotalQuantity: 2},
	}}
	svc := NewInventoryService(repo, nil)

	rows, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Out-of-stock first, then low stock alphabetically.
	assert.Equal(t, "Bread", rows[0].Name)
	assert.Equal(t, "Apples", rows[1].Name)
	assert.Equal(t, "Zucchini", rows[2].Name)
}

func TestExpiringDefaultsWindowTo30Days(t *testing.T) {
	repo := &stubInventoryRepo{}
	svc := NewInventoryService(repo, nil)

	_, err := svc.Expiring(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, repo.expiringDays)

	_, err = svc.Expiring(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, repo.expiringDays)
}

func TestFullViewWithoutRedisHitsRepository(t *testing.T) {
	repo := &stubInventoryRepo{rows: []dto.InventoryRow{
		{ProductID: 1, Name: "Milk", StockStatus: dto.StockStatusOK},
	}}
	svc := NewInventoryService(repo, nil)

	rows, err := svc.FullView(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Milk", rows[0].Name)
}
