package repository

import (
	"context"
	"errors"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	domainRepo "github.com/marea-picante/pos-terminal/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog cache repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

// Replace swaps the cached catalog for a fresh backend snapshot in a single
// transaction, so readers never observe a half-refreshed catalog.
func (r *catalogRepository) Replace(ctx context.Context, categories []entity.Category, products []entity.Product, tables []entity.DiningTable) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entity.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entity.DiningTable{}).Error; err != nil {
			return err
		}

		if len(categories) > 0 {
			if err := tx.CreateInBatches(categories, 100).Error; err != nil {
				return err
			}
		}
		if len(products) > 0 {
			if err := tx.CreateInBatches(products, 100).Error; err != nil {
				return err
			}
		}
		if len(tables) > 0 {
			if err := tx.CreateInBatches(tables, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *catalogRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&entity.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&entity.DiningTable{}).Error
	})
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) ListTables(ctx context.Context) ([]entity.DiningTable, error) {
	var tables []entity.DiningTable
	err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error
	return tables, err
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepository) ListProductsByCategory(ctx context.Context, categoryID uint) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *catalogRepository) GetProductByName(ctx context.Context, name string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}
