package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/services"
	"github.com/zaylux/zaylux-store-api/utils"
)

// OrderItemRequest is one snapshot line of an order creation request
type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	NameEN    string  `json:"name_en"`
	NameAR    string  `json:"name_ar"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Image     string  `json:"image"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Phone        string             `json:"phone" binding:"required"`
	City         string             `json:"city" binding:"required"`
	Address      string             `json:"address" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal     float64            `json:"subtotal"`
	Discount     float64            `json:"discount"`
	Total        float64            `json:"total"`
	CouponCode   *string            `json:"coupon_code"`
}

// TrackOrderRequest represents the request body for tracking an order
type TrackOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// OrderController handles the public order endpoints
type OrderController struct {
	DB        *gorm.DB
	Sequence  *services.SequenceService
	Inventory *services.InventoryService
	WhatsApp  services.WhatsAppSender
}

// NewOrderController wires the order endpoints to their collaborators
func NewOrderController(db *gorm.DB, sequence *services.SequenceService, inventory *services.InventoryService, whatsapp services.WhatsAppSender) *OrderController {
	return &OrderController{DB: db, Sequence: sequence, Inventory: inventory, WhatsApp: whatsapp}
}

// CreateOrder handles POST /api/orders - places a new order in pending
// confirmation state. The public id is allocated before any stock moves, so
// a counter-store outage aborts the order with nothing reserved.
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Blocked customers are rejected before anything is reserved
	var blocked models.BlockedCustomer
	if err := ctl.DB.First(&blocked, "phone = ?", req.Phone).Error; err == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_BLOCKED",
				"message": "Your account has been blocked. Please contact support.",
			},
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		databaseError(c, "Failed to check customer status")
		return
	}

	publicOrderID, err := ctl.Sequence.NextPublicID()
	if err != nil {
		utils.Logger().Error("Order id allocation failed", zap.Error(err))
		databaseError(c, "Failed to allocate order id")
		return
	}

	reservation := make([]services.ReservationItem, 0, len(req.Items))
	for _, item := range req.Items {
		reservation = append(reservation, services.ReservationItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := ctl.Inventory.Reserve(reservation); err != nil {
		var notFound *services.ProductNotFoundError
		var insufficient *services.InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product " + notFound.ProductID + " not found",
				},
			})
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": "Insufficient stock for " + insufficient.NameEN,
				},
			})
		default:
			databaseError(c, "Failed to reserve stock")
		}
		return
	}

	order := models.Order{
		ID:                 uuid.NewString(),
		PublicOrderID:      publicOrderID,
		CustomerName:       req.CustomerName,
		Phone:              req.Phone,
		City:               req.City,
		Address:            req.Address,
		Subtotal:           req.Subtotal,
		Discount:           req.Discount,
		Total:              req.Total,
		CouponCode:         req.CouponCode,
		PaymentMethod:      "Cash on Delivery",
		Status:             models.StatusPending,
		ConfirmationStatus: models.ConfirmationPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			NameEN:    item.NameEN,
			NameAR:    item.NameAR,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	if err := ctl.DB.Create(&order).Error; err != nil {
		// Stock was already taken for this order; give it back.
		ctl.Inventory.Release(reservation)
		utils.Logger().Error("Order persist failed", zap.Error(err))
		databaseError(c, "Failed to create order")
		return
	}

	// Confirmation request goes out best-effort; a send failure never fails
	// the order.
	go func(phone, publicID, name string, total float64) {
		if res := ctl.WhatsApp.SendConfirmationRequest(phone, publicID, name, total, "en"); !res.Success {
			utils.Logger().Warn("Failed to send confirmation request",
				zap.String("public_order_id", publicID),
				zap.String("error", res.Error),
			)
		}
	}(order.Phone, order.PublicOrderID, order.CustomerName, order.Total)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// TrackOrder handles POST /api/orders/track - looks up an order by its public
// id, guarding it with the customer's phone. Phones are compared by canonical
// key so formatting differences don't block the lookup.
func (ctl *OrderController) TrackOrder(c *gin.Context) {
	var req TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Order ID and phone are required",
			},
		})
		return
	}

	var order models.Order
	err := ctl.DB.Preload("Items").First(&order, "public_order_id = ?", req.OrderID).Error
	if err != nil || services.NormalizePhone(order.Phone) != services.NormalizePhone(req.Phone) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"public_order_id":     order.PublicOrderID,
			"customer_name":       order.CustomerName,
			"status":              order.Status,
			"status_ar":           models.StatusLabelAR(order.Status),
			"confirmation_status": order.ConfirmationStatus,
			"items":               order.Items,
			"subtotal":            order.Subtotal,
			"discount":            order.Discount,
			"total":               order.Total,
			"created_at":          order.CreatedAt.Format(time.RFC3339),
		},
	})
}

// databaseError writes the standard 500 envelope
func databaseError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": message,
		},
	})
}
