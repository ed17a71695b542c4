package service

import (
	"context"

	"github.com/diyath7/small-shop-system/internal/dto"
	"github.com/diyath7/small-shop-system/internal/model"
	"github.com/diyath7/small-shop-system/internal/repository"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Delete(ctx context.Context, id uint) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup := model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, &sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(&sup)
	return &resp, nil
}

func (s *supplierService) Update(ctx context.Context, id uint, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundf("Supplier not found")
	}
	sup.Name = req.Name
	sup.Phone = req.Phone
	sup.Email = req.Email
	sup.Address = req.Address
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundf("Supplier not found")
	}
	return nil
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
