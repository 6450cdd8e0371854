package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/javajoker/storefront-backend/internal/apperrors"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	mock_store "github.com/javajoker/storefront-backend/internal/store/mocks"
)

const testScreenshotLimit = 10 << 20

type OrderServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memstore.Store
	publisher *recordingPublisher
	service   *OrderService
	now       time.Time
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memstore.New()
	suite.publisher = newRecordingPublisher(nil)
	suite.service = NewOrderService(suite.store, suite.publisher, testScreenshotLimit)
	suite.now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
}

func sampleOrderRequest(orderID string) *CreateOrderRequest {
	return &CreateOrderRequest{
		OrderID: orderID,
		Customer: models.Customer{
			Name:    "Alice",
			Phone:   "+1-555-0100",
			Email:   "alice@example.com",
			Address: "1 Main St",
		},
		Items: []OrderItemRequest{
			{ProductID: "p1", Name: "Widget", Price: 100, Quantity: 2},
		},
		Total:         200,
		PaymentMethod: "bank-transfer",
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrderDefaults() {
	order, err := suite.service.CreateOrder(suite.ctx, sampleOrderRequest("ORD-1"))
	suite.Require().NoError(err)

	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Equal(suite.now, order.OrderDate)
	suite.Nil(order.PaymentScreenshot)
	suite.Require().Len(order.Items, 1)
	suite.Equal("Widget", order.Items[0].Name)

	ev := suite.publisher.Last()
	suite.Equal(events.OrderAdded, ev.Kind)
	suite.Equal("ORD-1", ev.Payload.(*models.Order).OrderID)
}

func (suite *OrderServiceTestSuite) TestCreateOrderWithScreenshot() {
	req := sampleOrderRequest("ORD-2")
	req.PaymentScreenshot = &ScreenshotRequest{
		Data:     "data:image/png;base64,iVBORw0KGgo=",
		FileName: "receipt.png",
	}

	order, err := suite.service.CreateOrder(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Require().NotNil(order.PaymentScreenshot)
	suite.Equal("receipt.png", order.PaymentScreenshot.FileName)
	suite.Equal(suite.now, order.PaymentScreenshot.UploadedAt)

	stored, err := suite.service.GetOrder(suite.ctx, "ORD-2")
	suite.Require().NoError(err)
	suite.Equal(req.PaymentScreenshot.Data, stored.PaymentScreenshot.Data)
}

func (suite *OrderServiceTestSuite) TestOversizedScreenshotIsRejectedAndNotPersisted() {
	req := sampleOrderRequest("ORD-BIG")
	req.PaymentScreenshot = &ScreenshotRequest{
		Data:     "data:image/jpeg;base64," + strings.Repeat("A", testScreenshotLimit),
		FileName: "huge.jpg",
	}

	_, err := suite.service.CreateOrder(suite.ctx, req)
	suite.True(apperrors.IsValidation(err))

	_, err = suite.service.GetOrder(suite.ctx, "ORD-BIG")
	suite.True(apperrors.IsNotFound(err))
	suite.Empty(suite.publisher.Events())
}

func (suite *OrderServiceTestSuite) TestScreenshotMustBeImageDataPayload() {
	req := sampleOrderRequest("ORD-PDF")
	req.PaymentScreenshot = &ScreenshotRequest{Data: "data:application/pdf;base64,JVBERi0="}

	_, err := suite.service.CreateOrder(suite.ctx, req)
	suite.True(apperrors.IsValidation(err))

	_, err = suite.service.GetOrder(suite.ctx, "ORD-PDF")
	suite.True(apperrors.IsNotFound(err))
}

func (suite *OrderServiceTestSuite) TestCreateOrderRequiresOrderID() {
	_, err := suite.service.CreateOrder(suite.ctx, sampleOrderRequest(""))
	suite.True(apperrors.IsValidation(err))
}

func (suite *OrderServiceTestSuite) TestDuplicateOrderIDConflicts() {
	_, err := suite.service.CreateOrder(suite.ctx, sampleOrderRequest("ORD-1"))
	suite.Require().NoError(err)

	_, err = suite.service.CreateOrder(suite.ctx, sampleOrderRequest("ORD-1"))
	suite.True(apperrors.IsConflict(err))
	suite.Len(suite.publisher.Events(), 1)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderMergesByOrderID() {
	_, err := suite.service.CreateOrder(suite.ctx, sampleOrderRequest("ORD-1"))
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateOrder(suite.ctx, "ORD-1", &UpdateOrderRequest{
		Status: ptr(models.OrderStatusShipped),
	})
	suite.Require().NoError(err)

	suite.Equal(models.OrderStatusShipped, updated.Status)
	suite.Equal("Alice", updated.Customer.Name)
	suite.Equal(200.0, updated.Total)
	suite.Equal(events.OrderUpdated, suite.publisher.Last().Kind)
}

func (suite *OrderServiceTestSuite) TestUpdateMissingOrder() {
	_, err := suite.service.UpdateOrder(suite.ctx, "missing", &UpdateOrderRequest{Status: ptr("Shipped")})
	suite.True(apperrors.IsNotFound(err))
	suite.Empty(suite.publisher.Events())
}

func (suite *OrderServiceTestSuite) TestDeleteOrder() {
	_, err := suite.service.CreateOrder(suite.ctx, sampleOrderRequest("ORD-1"))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteOrder(suite.ctx, "ORD-1"))
	ev := suite.publisher.Last()
	suite.Equal(events.OrderDeleted, ev.Kind)
	suite.Equal(events.OrderDeletedPayload{OrderID: "ORD-1"}, ev.Payload)

	err = suite.service.DeleteOrder(suite.ctx, "ORD-1")
	suite.True(apperrors.IsNotFound(err))
}

func (suite *OrderServiceTestSuite) TestListOrdersNewestFirst() {
	older := sampleOrderRequest("ORD-OLD")
	older.OrderDate = ptr(suite.now.Add(-time.Hour))
	newer := sampleOrderRequest("ORD-NEW")
	newer.OrderDate = ptr(suite.now)

	_, err := suite.service.CreateOrder(suite.ctx, older)
	suite.Require().NoError(err)
	_, err = suite.service.CreateOrder(suite.ctx, newer)
	suite.Require().NoError(err)

	orders, err := suite.service.ListOrders(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal("ORD-NEW", orders[0].OrderID)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func TestListOrdersStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mock_store.NewMockOrderStore(ctrl)
	service := NewOrderService(orders, newRecordingPublisher(nil), testScreenshotLimit)

	orders.EXPECT().FindOrders(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := service.ListOrders(context.Background())
	assert.True(t, apperrors.IsStoreUnavailable(err))
}
