// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type OrderService struct {
	store              store.OrderStore
	publisher          events.Publisher
	maxScreenshotBytes int
	now                func() time.Time
}

type ScreenshotRequest struct {
	Data       string     `json:"data" validate:"required,image_data_uri"`
	FileName   string     `json:"fileName" validate:"max=255"`
	UploadedAt *time.Time `json:"uploadedAt"`
}

type CreateOrderRequest struct {
	OrderID           string             `json:"orderId" validate:"required,max=100"`
	Customer          models.Customer    `json:"customer"`
	Items             []OrderItemRequest `json:"items" validate:"dive"`
	Total             float64            `json:"total" validate:"gte=0"`
	PaymentMethod     string             `json:"paymentMethod" validate:"max=50"`
	Status            string             `json:"status" validate:"max=50"`
	OrderDate         *time.Time         `json:"orderDate"`
	PaymentScreenshot *ScreenshotRequest `json:"paymentScreenshot"`
}

type OrderItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Image     string  `json:"image"`
}

type UpdateOrderRequest struct {
	Status            *string            `json:"status" validate:"omitempty,min=1,max=50"`
	Customer          *models.Customer   `json:"customer"`
	PaymentMethod     *string            `json:"paymentMethod" validate:"omitempty,max=50"`
	PaymentScreenshot *ScreenshotRequest `json:"paymentScreenshot"`
}

func NewOrderService(orderStore store.OrderStore, publisher events.Publisher, maxScreenshotBytes int) *OrderService {
	return &OrderService{
		store:              orderStore,
		publisher:          publisher,
		maxScreenshotBytes: maxScreenshotBytes,
		now:                time.Now,
	}
}

// ListOrders returns every order, most recent orderDate first.
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.FindOrders(ctx, store.NewestFirst)
	if err != nil {
		return nil, failed("list_orders", storeFailure(err))
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, failed("get_order", storeFailure(err))
	}
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("create_order", validationFailed(err))
	}
	screenshot, err := s.screenshot(req.PaymentScreenshot)
	if err != nil {
		return nil, failed("create_order", err)
	}

	items := make(models.OrderItems, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}

	status := req.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	orderDate := s.now().UTC()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order := &models.Order{
		OrderID:           req.OrderID,
		Customer:          req.Customer,
		Items:             items,
		Total:             req.Total,
		PaymentMethod:     req.PaymentMethod,
		Status:            status,
		OrderDate:         orderDate,
		PaymentScreenshot: screenshot,
	}

	if err := s.store.InsertOrder(ctx, order); err != nil {
		if apperrors.IsConflict(err) {
			err = apperrors.Conflict(fmt.Sprintf("order %s already exists", req.OrderID), err)
		}
		return nil, failed("create_order", storeFailure(err))
	}

	s.publisher.Publish(events.OrderAdded, order)

	logrus.WithFields(logrus.Fields{
		"order_id":       order.OrderID,
		"items":          len(order.Items),
		"has_screenshot": order.PaymentScreenshot != nil,
	}).Info("Order created")
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req *UpdateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("update_order", validationFailed(err))
	}
	screenshot, err := s.screenshot(req.PaymentScreenshot)
	if err != nil {
		return nil, failed("update_order", err)
	}

	patch := models.OrderPatch{
		Status:            req.Status,
		Customer:          req.Customer,
		PaymentMethod:     req.PaymentMethod,
		PaymentScreenshot: screenshot,
	}
	order, err := s.store.UpdateOrder(ctx, orderID, patch)
	if err != nil {
		return nil, failed("update_order", storeFailure(err))
	}

	s.publisher.Publish(events.OrderUpdated, order)

	logrus.WithField("order_id", orderID).Info("Order updated")
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	if _, err := s.store.DeleteOrder(ctx, orderID); err != nil {
		return failed("delete_order", storeFailure(err))
	}

	s.publisher.Publish(events.OrderDeleted, events.OrderDeletedPayload{OrderID: orderID})

	logrus.WithField("order_id", orderID).Info("Order deleted")
	return nil
}

// screenshot checks the payload size ceiling and stamps the upload time.
func (s *OrderService) screenshot(req *ScreenshotRequest) (*models.PaymentScreenshot, error) {
	if req == nil {
		return nil, nil
	}
	if len(req.Data) > s.maxScreenshotBytes {
		return nil, apperrors.Validation(
			fmt.Sprintf("payment screenshot exceeds the %d byte limit", s.maxScreenshotBytes),
			[]utils.ValidationError{{
				Field:   "paymentScreenshot.data",
				Tag:     "max_bytes",
				Message: fmt.Sprintf("payload is %d bytes, limit is %d", len(req.Data), s.maxScreenshotBytes),
			}},
		)
	}

	uploadedAt := s.now().UTC()
	if req.UploadedAt != nil {
		uploadedAt = *req.UploadedAt
	}
	return &models.PaymentScreenshot{
		Data:       req.Data,
		FileName:   req.FileName,
		UploadedAt: uploadedAt,
	}, nil
}
