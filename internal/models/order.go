// internal/models/order.go
package models

import (
	"database/sql/driver"
	"time"
)

type Customer struct {
	Name    string `json:"name" gorm:"size:255"`
	Phone   string `json:"phone" gorm:"size:50"`
	Email   string `json:"email" gorm:"size:255"`
	Address string `json:"address" gorm:"type:text"`
}

// OrderItem is a snapshot of a product taken at checkout; it is never re-derived from the catalog.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return jsonValue([]OrderItem(items))
}

func (items *OrderItems) Scan(value interface{}) error {
	return scanJSON(value, (*[]OrderItem)(items))
}

// PaymentScreenshot is the payment evidence attached to an order. Data holds a
// self-describing "data:image/...;base64," payload.
type PaymentScreenshot struct {
	Data       string    `json:"data"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (s PaymentScreenshot) Value() (driver.Value, error) {
	return jsonValue(s)
}

func (s *PaymentScreenshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

type Order struct {
	ID                uint               `json:"id" gorm:"primaryKey"`
	OrderID           string             `json:"orderId" gorm:"size:100;uniqueIndex;not null"`
	Customer          Customer           `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Items             OrderItems         `json:"items" gorm:"type:jsonb"`
	Total             float64            `json:"total" gorm:"type:decimal(12,2)"`
	PaymentMethod     string             `json:"paymentMethod" gorm:"size:50"`
	Status            string             `json:"status" gorm:"size:50;not null;index"`
	OrderDate         time.Time          `json:"orderDate" gorm:"index"`
	PaymentScreenshot *PaymentScreenshot `json:"paymentScreenshot,omitempty" gorm:"type:jsonb"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

func (o Order) Clone() Order {
	if o.Items != nil {
		o.Items = append(make(OrderItems, 0, len(o.Items)), o.Items...)
	}
	if o.PaymentScreenshot != nil {
		shot := *o.PaymentScreenshot
		o.PaymentScreenshot = &shot
	}
	return o
}

// OrderPatch is the staff-editable subset of an order. Items and total are fixed at checkout.
type OrderPatch struct {
	Status            *string            `json:"status,omitempty" validate:"omitempty,min=1,max=50"`
	Customer          *Customer          `json:"customer,omitempty"`
	PaymentMethod     *string            `json:"paymentMethod,omitempty" validate:"omitempty,max=50"`
	PaymentScreenshot *PaymentScreenshot `json:"paymentScreenshot,omitempty"`
}

func (p OrderPatch) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Customer != nil {
		updates["customer_name"] = p.Customer.Name
		updates["customer_phone"] = p.Customer.Phone
		updates["customer_email"] = p.Customer.Email
		updates["customer_address"] = p.Customer.Address
	}
	if p.PaymentMethod != nil {
		updates["payment_method"] = *p.PaymentMethod
	}
	if p.PaymentScreenshot != nil {
		updates["payment_screenshot"] = *p.PaymentScreenshot
	}
	return updates
}

func (p OrderPatch) Apply(order *Order) {
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.Customer != nil {
		order.Customer = *p.Customer
	}
	if p.PaymentMethod != nil {
		order.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentScreenshot != nil {
		shot := *p.PaymentScreenshot
		order.PaymentScreenshot = &shot
	}
}

func (p OrderPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
