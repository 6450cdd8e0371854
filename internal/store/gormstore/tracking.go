package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

const trackingResource = "tracking"

// FindTracking orders by surrogate id since created_at is a client-supplied string.
func (s *Store) FindTracking(ctx context.Context, order store.SortOrder) ([]models.TrackingRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	direction := "id DESC"
	if order == store.OldestFirst {
		direction = "id ASC"
	}

	var records []models.TrackingRecord
	if err := s.db.WithContext(ctx).Order(direction).Find(&records).Error; err != nil {
		return nil, classify(err, trackingResource)
	}
	return records, nil
}

func (s *Store) GetTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var record models.TrackingRecord
	if err := s.db.WithContext(ctx).First(&record, "qr_id = ?", qrID).Error; err != nil {
		return nil, classify(err, trackingResource)
	}
	return &record, nil
}

func (s *Store) InsertTracking(ctx context.Context, record *models.TrackingRecord) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return classify(s.db.WithContext(ctx).Create(record).Error, trackingResource)
}

func (s *Store) UpdateTracking(ctx context.Context, qrID string, patch models.TrackingPatch) (*models.TrackingRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var record models.TrackingRecord
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&record, "qr_id = ?", qrID).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}
		if err := tx.Model(&models.TrackingRecord{}).Where("qr_id = ?", qrID).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		return tx.First(&record, "qr_id = ?", qrID).Error
	})
	if err != nil {
		return nil, classify(err, trackingResource)
	}
	return &record, nil
}

func (s *Store) DeleteTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var record models.TrackingRecord
	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.First(&record, "qr_id = ?", qrID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TrackingRecord{}, "qr_id = ?", qrID).Error
	})
	if err != nil {
		return nil, classify(err, trackingResource)
	}
	return &record, nil
}
