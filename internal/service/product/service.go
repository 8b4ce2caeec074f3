package product

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/huellas-salud/vet-api/internal/model"
	"github.com/huellas-salud/vet-api/internal/repository"
	apperrors "github.com/huellas-salud/vet-api/pkg/errors"
)

type Service struct {
	repo repository.ProductRepository
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("product", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("product", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("product", err)
		}
		return nil, apperrors.Internal(err)
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("product", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}
