// internal/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// bodyOverhead is the room left for the non-screenshot part of an order body.
const bodyOverhead = 1 << 20

type OrderHandler struct {
	orderService *services.OrderService
	maxBodyBytes int64
}

func NewOrderHandler(orderService *services.OrderService, maxScreenshotBytes int) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		maxBodyBytes: int64(maxScreenshotBytes) + bodyOverhead,
	}
}

func (h *OrderHandler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
}

// GET /api/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, orders)
}

// GET /api/orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, order)
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	h.limitBody(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequestBody), err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, order)
}

// PUT /api/orders/:orderId
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	h.limitBody(c)

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyInvalidRequestBody), err.Error())
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("orderId"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.ResourceResponse(c, order)
}

// DELETE /api/orders/:orderId
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("orderId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.DeletedResponse(c, i18n.KeyOrderDeleted)
}
