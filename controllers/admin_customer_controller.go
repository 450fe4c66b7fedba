package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// CustomerSummary is the per-phone aggregation returned to the admin
type CustomerSummary struct {
	Phone           string    `json:"phone"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	Address         string    `json:"address"`
	TotalOrders     int       `json:"total_orders"`
	CancelledOrders int       `json:"cancelled_orders"`
	TotalSpent      float64   `json:"total_spent"`
	LastOrder       time.Time `json:"last_order"`
	IsBlocked       bool      `json:"is_blocked" gorm:"-"`
}

// AdminCustomerController handles customer management for admins
type AdminCustomerController struct {
	DB *gorm.DB
}

// NewAdminCustomerController creates an admin customer controller
func NewAdminCustomerController(db *gorm.DB) *AdminCustomerController {
	return &AdminCustomerController{DB: db}
}

// ListCustomers handles GET /admin/customers - customers derived from order
// history, grouped by phone with order statistics
func (ctl *AdminCustomerController) ListCustomers(c *gin.Context) {
	var customers []CustomerSummary
	err := ctl.DB.Raw(`
		SELECT phone,
		       MAX(customer_name) AS name,
		       MAX(city) AS city,
		       MAX(address) AS address,
		       COUNT(*) AS total_orders,
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS cancelled_orders,
		       SUM(total) AS total_spent,
		       MAX(created_at) AS last_order
		FROM orders
		GROUP BY phone
		ORDER BY total_orders DESC`, models.StatusCancelled).Scan(&customers).Error
	if err != nil {
		databaseError(c, "Failed to load customers")
		return
	}

	var blocked []models.BlockedCustomer
	if err := ctl.DB.Find(&blocked).Error; err != nil {
		databaseError(c, "Failed to load blocked customers")
		return
	}
	blockedSet := make(map[string]bool, len(blocked))
	for _, b := range blocked {
		blockedSet[b.Phone] = true
	}
	for i := range customers {
		customers[i].IsBlocked = blockedSet[customers[i].Phone]
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customers})
}

// BlockCustomer handles POST /admin/customers/:phone/block
func (ctl *AdminCustomerController) BlockCustomer(c *gin.Context) {
	blocked := models.BlockedCustomer{
		Phone:     c.Param("phone"),
		BlockedAt: time.Now().UTC(),
	}
	if err := ctl.DB.Save(&blocked).Error; err != nil {
		databaseError(c, "Failed to block customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer blocked successfully"})
}

// UnblockCustomer handles DELETE /admin/customers/:phone/block
func (ctl *AdminCustomerController) UnblockCustomer(c *gin.Context) {
	if err := ctl.DB.Delete(&models.BlockedCustomer{}, "phone = ?", c.Param("phone")).Error; err != nil {
		databaseError(c, "Failed to unblock customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer unblocked successfully"})
}

// GetCustomerOrders handles GET /admin/customers/:phone/orders
func (ctl *AdminCustomerController) GetCustomerOrders(c *gin.Context) {
	var orders []models.Order
	err := ctl.DB.Preload("Items").
		Where("phone = ?", c.Param("phone")).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		databaseError(c, "Failed to load customer orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}
