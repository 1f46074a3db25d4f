package repository

import (
	"context"

	"github.com/akozlenko/kasa-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
}
