package repository

import (
	"context"

	"github.com/aluyapeter/fin-doc/internal/product/domain"
)

// Repository defines persistence for products.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	List(ctx context.Context) ([]*domain.Product, error)
}
