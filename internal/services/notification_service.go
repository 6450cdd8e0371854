// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/utils"
)

const orderSMSTemplate = `New order #{{.OrderID}} from {{.Customer.Name}} ({{.Customer.Phone}}): {{len .Items}} item(s), total {{.Total}}. Payment: {{.PaymentMethod}}.`

// SMSSender delivers a rendered text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSMSSender writes messages to the log instead of an SMS gateway.
type LogSMSSender struct{}

func (LogSMSSender) Send(_ context.Context, phone, message string) error {
	logrus.WithFields(logrus.Fields{
		"owner_phone": phone,
		"message":     message,
	}).Info("SMS notification")
	return nil
}

type NotificationService struct {
	sender   SMSSender
	template *template.Template
}

type SMSCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type SMSOrderDetails struct {
	OrderID       string        `json:"orderId" validate:"required"`
	Customer      SMSCustomer   `json:"customer"`
	Items         []interface{} `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"paymentMethod"`
}

type OrderSMSRequest struct {
	OrderDetails SMSOrderDetails `json:"orderDetails"`
	OwnerPhone   string          `json:"ownerPhone" validate:"required"`
}

type SMSResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

func NewNotificationService(sender SMSSender) *NotificationService {
	if sender == nil {
		sender = LogSMSSender{}
	}
	return &NotificationService{
		sender:   sender,
		template: template.Must(template.New("order_sms").Parse(orderSMSTemplate)),
	}
}

// RenderOrderSMS fills the order notification template.
func (s *NotificationService) RenderOrderSMS(details SMSOrderDetails) (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, details); err != nil {
		return "", fmt.Errorf("failed to render SMS template: %w", err)
	}
	return buf.String(), nil
}

func (s *NotificationService) SendOrderSMS(ctx context.Context, req *OrderSMSRequest) (*SMSResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, failed("send_order_sms", validationFailed(err))
	}

	message, err := s.RenderOrderSMS(req.OrderDetails)
	if err != nil {
		return nil, failed("send_order_sms", err)
	}
	if err := s.sender.Send(ctx, req.OwnerPhone, message); err != nil {
		return nil, failed("send_order_sms", fmt.Errorf("failed to send SMS: %w", err))
	}

	return &SMSResult{
		Success: true,
		Message: "SMS notification logged",
		OrderID: req.OrderDetails.OrderID,
	}, nil
}
