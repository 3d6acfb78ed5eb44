package repository

import (
	"context"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
)

// CatalogRepository is the terminal-local catalog cache: categories,
// products and tables mirrored from the backend so browsing and price
// lookups keep working when the link is down.
type CatalogRepository interface {
	// Replace swaps the whole cached snapshot in one transaction.
	Replace(ctx context.Context, categories []entity.Category, products []entity.Product, tables []entity.DiningTable) error
	// Clear drops the cached snapshot.
	Clear(ctx context.Context) error

	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListTables(ctx context.Context) ([]entity.DiningTable, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID uint) ([]entity.Product, error)
	GetProductByID(ctx context.Context, id uint) (*entity.Product, error)
	GetProductByName(ctx context.Context, name string) (*entity.Product, error)
}
