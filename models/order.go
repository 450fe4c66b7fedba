package models

import (
	"time"
)

// Order lifecycle statuses. Status is the broad fulfillment state an admin can
// override; ConfirmationStatus is the narrower WhatsApp-handshake lifecycle.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"

	ConfirmationPending   = "pending"
	ConfirmationConfirmed = "confirmed"
	ConfirmationCancelled = "cancelled"
)

// ValidStatuses lists the order statuses an admin may set manually.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// Order represents a customer order in the system
type Order struct {
	ID                 string      `gorm:"primaryKey" json:"id"`
	PublicOrderID      string      `gorm:"uniqueIndex;not null" json:"public_order_id"` // human-facing sequential id, e.g. ZLX-100001
	CustomerName       string      `gorm:"not null" json:"customer_name"`
	Phone              string      `gorm:"not null;index" json:"phone"`
	City               string      `json:"city"`
	Address            string      `json:"address"`
	Items              []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal           float64     `gorm:"not null" json:"subtotal"`
	Discount           float64     `gorm:"default:0" json:"discount"`
	Total              float64     `gorm:"not null" json:"total"`
	CouponCode         *string     `json:"coupon_code"`
	PaymentMethod      string      `gorm:"default:'Cash on Delivery'" json:"payment_method"`
	Status             string      `gorm:"not null;default:'Pending'" json:"status"`
	ConfirmationStatus string      `gorm:"not null;default:'pending';index" json:"confirmation_status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of a product at order time, not a live reference,
// so later product edits don't alter historical orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"not null;index" json:"-"`
	ProductID string  `gorm:"not null" json:"product_id"`
	NameEN    string  `json:"name_en"`
	NameAR    string  `json:"name_ar"`
	Price     float64 `json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Image     string  `json:"image"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// StatusLabelAR maps an order status to its Arabic display label.
func StatusLabelAR(status string) string {
	switch status {
	case StatusPending:
		return "قيد الانتظار"
	case StatusConfirmed:
		return "تم التأكيد"
	case StatusShipped:
		return "تم الشحن"
	case StatusDelivered:
		return "تم التوصيل"
	case StatusCancelled:
		return "ملغي"
	default:
		return status
	}
}
