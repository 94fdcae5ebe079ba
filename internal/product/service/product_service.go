// Package service implements catalog management.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aluyapeter/fin-doc/internal/product/domain"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepo is the minimal product repository needed by the service.
type ProductRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	List(ctx context.Context) ([]*domain.Product, error)
}

// ProductService manages the purchasable catalog.
type ProductService struct {
	products ProductRepo
	logger   *zap.Logger
}

func NewProductService(products ProductRepo, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// Create adds a product with a positive price to the catalog.
func (s *ProductService) Create(ctx context.Context, name string, priceInPence int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if priceInPence <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidProduct)
	}

	product := &domain.Product{
		ID:           uuid.New().String(),
		Name:         name,
		PriceInPence: priceInPence,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int64("price_in_pence", product.PriceInPence))
	return product, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List returns the full catalog in insertion order.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}
