package models

import (
	"time"
)

// NotifyRequest is a back-in-stock notification request for a product
type NotifyRequest struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"not null;index" json:"product_id"`
	Phone     string    `gorm:"not null" json:"phone"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the NotifyRequest model
func (NotifyRequest) TableName() string {
	return "notify_requests"
}
