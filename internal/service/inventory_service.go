package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	inventoryCacheKey = "inventory:view"
	// Short TTL: the view tolerates a few seconds of staleness after a sale,
	// the same trade-off the batch views already make.
	inventoryCacheTTL = 30 * time.Second
)

type InventoryService interface {
	FullView(ctx context.Context) ([]dto.InventoryRow, error)
	LowStock(ctx context.Context) ([]dto.InventoryRow, error)
	Expiring(ctx context.Context, days int) ([]dto.ExpiringRow, error)
}

type inventoryService struct {
	repo repository.InventoryRepository
	rdb  *redis.Client
}

func NewInventoryService(repo repository.InventoryRepository, rdb *redis.Client) InventoryService {
	return &inventoryService{repo: repo, rdb: rdb}
}

func (s *inventoryService) FullView(ctx context.Context) ([]dto.InventoryRow, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, inventoryCacheKey).Bytes(); err == nil {
			var rows []dto.InventoryRow
			if jsonErr := json.Unmarshal(cached, &rows); jsonErr == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.repo.FullView(ctx)
	if err != nil {
		return nil, err
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(rows); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), inventoryCacheKey, b, inventoryCacheTTL).Err()
		}
	}
	return rows, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]dto.InventoryRow, error) {
	rows, err := s.FullView(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]dto.InventoryRow, 0)
	for _, row := range rows {
		if row.StockStatus != dto.StockStatusOK {
			low = append(low, row)
		}
	}
	// OUT_OF_STOCK before LOW_STOCK, then by name.
	sort.Slice(low, func(i, j int) bool {
		if low[i].StockStatus != low[j].StockStatus {
			return low[i].StockStatus > low[j].StockStatus
		}
		return low[i].Name < low[j].Name
	})
	return low, nil
}

func (s *inventoryService) Expiring(ctx context.Context, days int) ([]dto.ExpiringRow, error) {
	if days <= 0 {
		days = 30
	}
	return s.repo.Expiring(ctx, days)
}
