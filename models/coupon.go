package models

import (
	"time"
)

// Coupon represents a discount code. Code is stored upper-cased and unique.
type Coupon struct {
	ID                 string     `gorm:"primaryKey" json:"id"`
	Code               string     `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercentage float64    `gorm:"not null" json:"discount_percentage"`
	ExpiryDate         *time.Time `json:"expiry_date"`
	MinOrderValue      *float64   `json:"min_order_value"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	UsageCount         int        `gorm:"default:0" json:"usage_count"`
	CreatedAt          time.Time  `json:"created_at"`
}

// TableName specifies the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}
