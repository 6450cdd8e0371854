// internal/services/tracking_service.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type TrackingService struct {
	store     store.TrackingStore
	publisher events.Publisher
}

type CreateTrackingRequest struct {
	QRID          string `json:"qrId" validate:"required,max=100"`
	Password      string `json:"password" validate:"required,maxbytes=72"`
	CustomerName  string `json:"customerName" validate:"max=255"`
	CustomerPhone string `json:"customerPhone" validate:"max=50"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	DeviceType    string `json:"deviceType" validate:"max=100"`
	DeviceModel   string `json:"deviceModel" validate:"max=255"`
	Status        string `json:"status" validate:"max=50"`
	Issue         string `json:"issue"`
	EstimatedDays int    `json:"estimatedDays" validate:"gte=0"`
	CreatedAt     string `json:"createdAt" validate:"max=64"`
	UpdatedAt     string `json:"updatedAt" validate:"max=64"`
}

type UpdateTrackingRequest struct {
	Password      *string `json:"password" validate:"omitempty,min=1,maxbytes=72"`
	CustomerName  *string `json:"customerName" validate:"omitempty,max=255"`
	CustomerPhone *string `json:"customerPhone" validate:"omitempty,max=50"`
	CustomerEmail *string `json:"customerEmail" validate:"omitempty,email"`
	DeviceType    *string `json:"deviceType" validate:"omitempty,max=100"`
	DeviceModel   *string `json:"deviceModel" validate:"omitempty,max=255"`
	Status        *string `json:"status" validate:"omitempty,min=1,max=50"`
	Issue         *string `json:"issue"`
	EstimatedDays *int    `json:"estimatedDays" validate:"omitempty,gte=0"`
	UpdatedAt     *string `json:"updatedAt" validate:"omitempty,max=64"`
}

type VerifyTrackingRequest struct {
	Password string `json:"password" validate:"required"`
}

func NewTrackingService(trackingStore store.TrackingStore, publisher events.Publisher) *TrackingService {
	return &TrackingService{
		store:     trackingStore,
		publisher: publisher,
	}
}

func (s *TrackingService) ListTracking(ctx context.Context) ([]models.TrackingRecord, error) {
	records, err := s.store.FindTracking(ctx, store.NewestFirst)
	if err != nil {
		return nil, failed("list_tracking", storeFailure(err))
	}
	if records == nil {
		records = []models.TrackingRecord{}
	}
	return records, nil
}

func (s *TrackingService) GetTracking(ctx context.Context, qrID string) (*models.TrackingRecord, error) {
	record, err := s.store.GetTracking(ctx, qrID)
	if err != nil {
		return nil, failed("get_tracking", storeFailure(err))
	}
	return record, nil
}

func (s *TrackingService) CreateTracking(ctx context.Context, req *CreateTrackingRequest) (*models.TrackingRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("create_tracking", validationFailed(err))
	}

	status := req.Status
	if status == "" {
		status = models.TrackingStatusReceived
	}

	record := &models.TrackingRecord{
		QRID:          req.QRID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		DeviceType:    req.DeviceType,
		DeviceModel:   req.DeviceModel,
		Status:        status,
		Issue:         req.Issue,
		EstimatedDays: req.EstimatedDays,
		Created:       req.CreatedAt,
		Updated:       req.UpdatedAt,
	}
	if err := record.SetPassword(req.Password); err != nil {
		return nil, failed("create_tracking", fmt.Errorf("failed to hash tracking password: %w", err))
	}

	if err := s.store.InsertTracking(ctx, record); err != nil {
		if apperrors.IsConflict(err) {
			err = apperrors.Conflict(fmt.Sprintf("tracking record %s already exists", req.QRID), err)
		}
		return nil, failed("create_tracking", storeFailure(err))
	}

	s.publisher.Publish(events.TrackingAdded, record)

	logrus.WithFields(logrus.Fields{
		"qr_id":  record.QRID,
		"status": record.Status,
	}).Info("Tracking record created")
	return record, nil
}

func (s *TrackingService) UpdateTracking(ctx context.Context, qrID string, req *UpdateTrackingRequest) (*models.TrackingRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("update_tracking", validationFailed(err))
	}

	patch := models.TrackingPatch{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		DeviceType:    req.DeviceType,
		DeviceModel:   req.DeviceModel,
		Status:        req.Status,
		Issue:         req.Issue,
		EstimatedDays: req.EstimatedDays,
		Updated:       req.UpdatedAt,
	}
	if req.Password != nil {
		hash, err := models.HashTrackingPassword(*req.Password)
		if err != nil {
			return nil, failed("update_tracking", fmt.Errorf("failed to hash tracking password: %w", err))
		}
		patch.PasswordHash = &hash
	}

	record, err := s.store.UpdateTracking(ctx, qrID, patch)
	if err != nil {
		return nil, failed("update_tracking", storeFailure(err))
	}

	s.publisher.Publish(events.TrackingUpdated, record)

	logrus.WithField("qr_id", qrID).Info("Tracking record updated")
	return record, nil
}

func (s *TrackingService) DeleteTracking(ctx context.Context, qrID string) error {
	if _, err := s.store.DeleteTracking(ctx, qrID); err != nil {
		return failed("delete_tracking", storeFailure(err))
	}

	s.publisher.Publish(events.TrackingDeleted, events.TrackingDeletedPayload{QRID: qrID})

	logrus.WithField("qr_id", qrID).Info("Tracking record deleted")
	return nil
}

// VerifyTracking returns the record only when password matches. An unknown QR code and a
// wrong password produce the same not-found error.
func (s *TrackingService) VerifyTracking(ctx context.Context, qrID string, req *VerifyTrackingRequest) (*models.TrackingRecord, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("verify_tracking", validationFailed(err))
	}

	record, err := s.store.GetTracking(ctx, qrID)
	if err != nil {
		return nil, failed("verify_tracking", storeFailure(err))
	}
	if !record.CheckPassword(req.Password) {
		logrus.WithField("qr_id", qrID).Warn("Tracking password mismatch")
		return nil, failed("verify_tracking", apperrors.NotFound("tracking"))
	}
	return record, nil
}
