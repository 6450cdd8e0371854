package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

const orderResource = "order"

func (s *Store) FindOrders(ctx context.Context, order store.SortOrder) ([]models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var orders []models.Order
	if err := s.db.WithContext(ctx).Order(orderClause(order, "order_date")).Find(&orders).Error; err != nil {
		return nil, classify(err, orderResource)
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, classify(err, orderResource)
	}
	return &order, nil
}

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return classify(s.db.WithContext(ctx).Create(order).Error, orderResource)
}

func (s *Store) UpdateOrder(ctx context.Context, orderID string, patch models.OrderPatch) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&order, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := tx.Model(&models.Order{}).Where("order_id = ?", orderID).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		return tx.First(&order, "order_id = ?", orderID).Error
	})
	if err != nil {
		return nil, classify(err, orderResource)
	}
	return &order, nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&order, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "order_id = ?", orderID).Error
	})
	if err != nil {
		return nil, classify(err, orderResource)
	}
	return &order, nil
}
