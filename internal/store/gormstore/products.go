package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

const productResource = "product"

func (s *Store) FindProducts(ctx context.Context, order store.SortOrder) ([]models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var products []models.Product
	if err := s.db.WithContext(ctx).Order(orderClause(order, "created_at")).Find(&products).Error; err != nil {
		return nil, classify(err, productResource)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, classify(err, productResource)
	}
	return &product, nil
}

func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return classify(s.db.WithContext(ctx).Create(product).Error, productResource)
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		return tx.First(&product, "id = ?", id).Error
	})
	if err != nil {
		return nil, classify(err, productResource)
	}
	return &product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, classify(err, productResource)
	}
	return &product, nil
}
