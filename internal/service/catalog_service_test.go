package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phaneesh28/project-backend/internal/domain"
)

type fakeProductRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeProductRepo) List(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func TestListProducts(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{{ID: 1, Name: "Phone"}, {ID: 2, Name: "Laptop"}}}
	svc := NewCatalogService(repo)

	got, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.products, got)
}

func TestListProducts_EmptyIsNotNil(t *testing.T) {
	svc := NewCatalogService(&fakeProductRepo{})

	got, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetProduct(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{{ID: 7, Name: "Camera", Price: 499.5}}}
	svc := NewCatalogService(repo)

	p, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Camera", p.Name)

	_, err = svc.GetProduct(context.Background(), 8)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_StoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewCatalogService(&fakeProductRepo{err: boom})

	_, err := svc.ListProducts(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = svc.GetProduct(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)
}
