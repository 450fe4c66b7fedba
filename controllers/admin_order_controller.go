package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/services"
)

// OrderStatusUpdateRequest represents the request body for a manual status
// update
type OrderStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminOrderController handles order management for admins
type AdminOrderController struct {
	DB            *gorm.DB
	Confirmations *services.ConfirmationService
}

// NewAdminOrderController creates an admin order controller
func NewAdminOrderController(db *gorm.DB, confirmations *services.ConfirmationService) *AdminOrderController {
	return &AdminOrderController{DB: db, Confirmations: confirmations}
}

// ListOrders handles GET /admin/orders - all orders, newest first
func (ctl *AdminOrderController) ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := ctl.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		databaseError(c, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// GetOrder handles GET /admin/orders/:id
func (ctl *AdminOrderController) GetOrder(c *gin.Context) {
	var order models.Order
	if err := ctl.DB.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			orderNotFound(c)
			return
		}
		databaseError(c, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status. A manual
// cancellation runs through the confirmation state machine's guarded cancel,
// so inventory is restored exactly once even if the customer cancelled over
// WhatsApp at the same time. Other statuses are plain field updates.
func (ctl *AdminOrderController) UpdateOrderStatus(c *gin.Context) {
	var req OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil || !isValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Invalid status",
			},
		})
		return
	}

	var order models.Order
	if err := ctl.DB.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			orderNotFound(c)
			return
		}
		databaseError(c, "Failed to load order")
		return
	}

	if req.Status == models.StatusCancelled {
		won, err := ctl.Confirmations.CancelGuarded(&order)
		if err != nil {
			databaseError(c, "Failed to cancel order")
			return
		}
		if !won {
			// The confirmation handshake already resolved this order; only
			// reflect the fulfillment status without touching stock again.
			if err := ctl.DB.Model(&order).Updates(map[string]interface{}{
				"status":     models.StatusCancelled,
				"updated_at": time.Now().UTC(),
			}).Error; err != nil {
				databaseError(c, "Failed to update order status")
				return
			}
		}
	} else {
		if err := ctl.DB.Model(&order).Updates(map[string]interface{}{
			"status":     req.Status,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
			databaseError(c, "Failed to update order status")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully"})
}

func isValidStatus(status string) bool {
	for _, s := range models.ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func orderNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ORDER_NOT_FOUND",
			"message": "Order not found",
		},
	})
}
