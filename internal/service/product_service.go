package service

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, validationf("unit_price must be >= 0")
	}
	p := model.Product{
		Name:         req.Name,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
		SupplierID:   req.SupplierID,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	resp := productToResponse(&p)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if req.UnitPrice.IsNegative() {
		return nil, validationf("unit_price must be >= 0")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundf("Product not found")
	}
	p.Name = req.Name
	p.Category = req.Category
	p.UnitPrice = req.UnitPrice
	p.ReorderLevel = req.ReorderLevel
	p.SupplierID = req.SupplierID
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundf("Product not found")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		UnitPrice:    p.UnitPrice,
		ReorderLevel: p.ReorderLevel,
		SupplierID:   p.SupplierID,
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	return resp
}
