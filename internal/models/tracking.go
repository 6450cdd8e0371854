// internal/models/tracking.go
package models

import "golang.org/x/crypto/bcrypt"

// TrackingRecord follows a device through the repair workflow. CreatedAt/UpdatedAt are
// supplied by the client as display strings, so they are not gorm-managed timestamps.
type TrackingRecord struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	QRID          string `json:"qrId" gorm:"column:qr_id;size:100;uniqueIndex;not null"`
	PasswordHash  string `json:"-" gorm:"size:255;not null"`
	CustomerName  string `json:"customerName" gorm:"size:255"`
	CustomerPhone string `json:"customerPhone" gorm:"size:50"`
	CustomerEmail string `json:"customerEmail" gorm:"size:255"`
	DeviceType    string `json:"deviceType" gorm:"size:100"`
	DeviceModel   string `json:"deviceModel" gorm:"size:255"`
	Status        string `json:"status" gorm:"size:50;index"`
	Issue         string `json:"issue" gorm:"type:text"`
	EstimatedDays int    `json:"estimatedDays"`
	Created       string `json:"createdAt" gorm:"column:created_at;size:64"`
	Updated       string `json:"updatedAt" gorm:"column:updated_at;size:64"`
}

func (TrackingRecord) TableName() string {
	return "tracking_records"
}

// HashTrackingPassword hashes a customer-facing tracking password for storage.
func HashTrackingPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func (t *TrackingRecord) SetPassword(password string) error {
	hash, err := HashTrackingPassword(password)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *TrackingRecord) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)) == nil
}

type TrackingPatch struct {
	PasswordHash  *string
	CustomerName  *string
	CustomerPhone *string
	CustomerEmail *string
	DeviceType    *string
	DeviceModel   *string
	Status        *string
	Issue         *string
	EstimatedDays *int
	Updated       *string
}

func (p TrackingPatch) Columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.PasswordHash != nil {
		updates["password_hash"] = *p.PasswordHash
	}
	if p.CustomerName != nil {
		updates["customer_name"] = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		updates["customer_phone"] = *p.CustomerPhone
	}
	if p.CustomerEmail != nil {
		updates["customer_email"] = *p.CustomerEmail
	}
	if p.DeviceType != nil {
		updates["device_type"] = *p.DeviceType
	}
	if p.DeviceModel != nil {
		updates["device_model"] = *p.DeviceModel
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Issue != nil {
		updates["issue"] = *p.Issue
	}
	if p.EstimatedDays != nil {
		updates["estimated_days"] = *p.EstimatedDays
	}
	if p.Updated != nil {
		updates["updated_at"] = *p.Updated
	}
	return updates
}

func (p TrackingPatch) Apply(record *TrackingRecord) {
	if p.PasswordHash != nil {
		record.PasswordHash = *p.PasswordHash
	}
	if p.CustomerName != nil {
		record.CustomerName = *p.CustomerName
	}
	if p.CustomerPhone != nil {
		record.CustomerPhone = *p.CustomerPhone
	}
	if p.CustomerEmail != nil {
		record.CustomerEmail = *p.CustomerEmail
	}
	if p.DeviceType != nil {
		record.DeviceType = *p.DeviceType
	}
	if p.DeviceModel != nil {
		record.DeviceModel = *p.DeviceModel
	}
	if p.Status != nil {
		record.Status = *p.Status
	}
	if p.Issue != nil {
		record.Issue = *p.Issue
	}
	if p.EstimatedDays != nil {
		record.EstimatedDays = *p.EstimatedDays
	}
	if p.Updated != nil {
		record.Updated = *p.Updated
	}
}

func (p TrackingPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}
