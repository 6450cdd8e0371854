// internal/handlers/tracking.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

// GET /api/tracking
func (h *TrackingHandler) GetTrackingRecords(c *gin.Context) {
	records, err := h.trackingService.ListTracking(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, records)
}

// GET /api/tracking/:qrId
func (h *TrackingHandler) GetTrackingRecord(c *gin.Context) {
	record, err := h.trackingService.GetTracking(c.Request.Context(), c.Param("qrId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, record)
}

// POST /api/tracking
func (h *TrackingHandler) CreateTrackingRecord(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequestBody), err.Error())
		return
	}

	record, err := h.trackingService.CreateTracking(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, record)
}

// PUT /api/tracking/:qrId
func (h *TrackingHandler) UpdateTrackingRecord(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequestBody), err.Error())
		return
	}

	record, err := h.trackingService.UpdateTracking(c.Request.Context(), c.Param("qrId"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, record)
}

// DELETE /api/tracking/:qrId
func (h *TrackingHandler) DeleteTrackingRecord(c *gin.Context) {
	if err := h.trackingService.DeleteTracking(c.Request.Context(), c.Param("qrId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.DeletedResponse(c, i18n.KeyTrackingDeleted)
}

// POST /api/tracking/:qrId/verify
func (h *TrackingHandler) VerifyTrackingRecord(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.VerifyTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequestBody), err.Error())
		return
	}

	record, err := h.trackingService.VerifyTracking(c.Request.Context(), c.Param("qrId"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, record)
}
