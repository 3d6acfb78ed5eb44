package service

import (
	"context"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/gateway"
	"github.com/marea-picante/pos-terminal/internal/domain/repository"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
	"github.com/marea-picante/pos-terminal/pkg/logger"
)

// CatalogService serves the terminal-local catalog cache and refreshes it
// from the backend. Reads never touch the network, so browsing and price
// lookups keep working while the link is down.
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	gateway     gateway.OrderGateway
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, gw gateway.OrderGateway) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		gateway:     gw,
	}
}

// Refresh pulls a fresh snapshot from the backend and swaps the local cache
// in one transaction. On any fetch failure the cache is left untouched.
func (s *CatalogService) Refresh(ctx context.Context) error {
	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		return err
	}
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return err
	}
	tables, err := s.gateway.ListTables(ctx)
	if err != nil {
		return err
	}

	if err := s.catalogRepo.Replace(ctx, categories, products, tables); err != nil {
		return err
	}

	logger.Info("catalog refreshed", map[string]interface{}{
		"categories": len(categories),
		"products":   len(products),
		"tables":     len(tables),
	})
	return nil
}

// Clear drops the cached snapshot, forcing a refresh before the next shift.
func (s *CatalogService) Clear(ctx context.Context) error {
	return s.catalogRepo.Clear(ctx)
}

// Categories lists the cached categories.
func (s *CatalogService) Categories(ctx context.Context) ([]entity.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

// Tables lists the cached dining tables.
func (s *CatalogService) Tables(ctx context.Context) ([]entity.DiningTable, error) {
	return s.catalogRepo.ListTables(ctx)
}

// Products lists cached products, optionally restricted to one category.
func (s *CatalogService) Products(ctx context.Context, categoryID *uint) ([]entity.Product, error) {
	if categoryID != nil {
		return s.catalogRepo.ListProductsByCategory(ctx, *categoryID)
	}
	return s.catalogRepo.ListProducts(ctx)
}

// Product returns one cached product by ID.
func (s *CatalogService) Product(ctx context.Context, id uint) (*entity.Product, error) {
	product, err := s.catalogRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
