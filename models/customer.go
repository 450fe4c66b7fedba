package models

import (
	"time"
)

// BlockedCustomer records a phone number that may no longer place orders
type BlockedCustomer struct {
	Phone     string    `gorm:"primaryKey" json:"phone"`
	BlockedAt time.Time `json:"blocked_at"`
}

// TableName specifies the table name for the BlockedCustomer model
func (BlockedCustomer) TableName() string {
	return "blocked_customers"
}
