// internal/models/product.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	ID             string         `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name           string         `json:"name" gorm:"size:255;not null"`
	Category       string         `json:"category" gorm:"size:100;index"`
	Price          float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice  float64        `json:"originalPrice" gorm:"type:decimal(12,2)"`
	Image          string         `json:"image" gorm:"type:text"`
	Images         pq.StringArray `json:"images" gorm:"type:text[]"`
	Rating         float64        `json:"rating" gorm:"type:decimal(3,2)"`
	Reviews        int64          `json:"reviews"`
	InStock        bool           `json:"inStock" gorm:"not null"`
	Badge          string         `json:"badge" gorm:"size:50"`
	QRID           string         `json:"qrId" gorm:"column:qr_id;size:100;index"`
	QRPassword     string         `json:"qrPassword" gorm:"column:qr_password;size:100"`
	TrackingStatus string         `json:"trackingStatus" gorm:"size:50"`
	OwnerGender    string         `json:"ownerGender" gorm:"size:20"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Clone returns a copy that shares no mutable state with p.
func (p Product) Clone() Product {
	if p.Images != nil {
		p.Images = append(make(pq.StringArray, 0, len(p.Images)), p.Images...)
	}
	return p
}

// ProductPatch carries the fields supplied by a partial update; nil means "leave unchanged".
type ProductPatch struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category       *string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Price          *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice  *float64  `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Image          *string   `json:"image,omitempty"`
	Images         *[]string `json:"images,omitempty"`
	Rating         *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Reviews        *int64    `json:"reviews,omitempty" validate:"omitempty,gte=0"`
	InStock        *bool     `json:"inStock,omitempty"`
	Badge          *string   `json:"badge,omitempty" validate:"omitempty,max=50"`
	QRID           *string   `json:"qrId,omitempty"`
	QRPassword     *string   `json:"qrPassword,omitempty"`
	TrackingStatus *string   `json:"trackingStatus,omitempty"`
	OwnerGender    *string   `json:"ownerGender,omitempty"`
}

// Columns maps the supplied fields to their column names for a partial UPDATE.
func (p ProductPatch) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.OriginalPrice != nil {
		updates["original_price"] = *p.OriginalPrice
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}
	if p.Images != nil {
		updates["images"] = pq.StringArray(*p.Images)
	}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.Reviews != nil {
		updates["reviews"] = *p.Reviews
	}
	if p.InStock != nil {
		updates["in_stock"] = *p.InStock
	}
	if p.Badge != nil {
		updates["badge"] = *p.Badge
	}
	if p.QRID != nil {
		updates["qr_id"] = *p.QRID
	}
	if p.QRPassword != nil {
		updates["qr_password"] = *p.QRPassword
	}
	if p.TrackingStatus != nil {
		updates["tracking_status"] = *p.TrackingStatus
	}
	if p.OwnerGender != nil {
		updates["owner_gender"] = *p.OwnerGender
	}
	return updates
}

// Apply merges the supplied fields into product in place.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Category != nil {
		product.Category = *p.Category
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		product.OriginalPrice = *p.OriginalPrice
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
	if p.Images != nil {
		product.Images = append(make(pq.StringArray, 0, len(*p.Images)), (*p.Images)...)
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
	if p.Reviews != nil {
		product.Reviews = *p.Reviews
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if p.Badge != nil {
		product.Badge = *p.Badge
	}
	if p.QRID != nil {
		product.QRID = *p.QRID
	}
	if p.QRPassword != nil {
		product.QRPassword = *p.QRPassword
	}
	if p.TrackingStatus != nil {
		product.TrackingStatus = *p.TrackingStatus
	}
	if p.OwnerGender != nil {
		product.OwnerGender = *p.OwnerGender
	}
}

func (p ProductPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
