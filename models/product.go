package models

import (
	"time"
)

// Product represents a catalog item in the store
type Product struct {
	ID            string                 `gorm:"primaryKey" json:"id"`
	NameEN        string                 `gorm:"not null" json:"name_en"`
	NameAR        string                 `gorm:"not null" json:"name_ar"`
	DescriptionEN string                 `json:"description_en"`
	DescriptionAR string                 `json:"description_ar"`
	Category      string                 `gorm:"index" json:"category"` // 'perfume' or 'drone'
	Price         float64                `gorm:"not null" json:"price"`
	OriginalPrice *float64               `json:"original_price"` // nullable, pre-discount display price
	Quantity      int                    `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Images        []string               `gorm:"serializer:json" json:"images"`
	IsVisible     bool                   `gorm:"default:true" json:"is_visible"`
	Rating        float64                `gorm:"default:0" json:"rating"`
	Reviews       int                    `gorm:"default:0" json:"reviews"`
	Specs         map[string]interface{} `gorm:"serializer:json" json:"specs,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
