package service

import (
	"context"
	"fmt"

	"github.com/Phaneesh28/project-backend/internal/domain"
	"github.com/Phaneesh28/project-backend/internal/repository"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type catalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
