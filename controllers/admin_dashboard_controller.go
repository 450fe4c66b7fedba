package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// AdminDashboardController serves aggregate statistics for the admin UI
type AdminDashboardController struct {
	DB *gorm.DB
}

// NewAdminDashboardController creates an admin dashboard controller
func NewAdminDashboardController(db *gorm.DB) *AdminDashboardController {
	return &AdminDashboardController{DB: db}
}

// GetStats handles GET /admin/dashboard/stats
func (ctl *AdminDashboardController) GetStats(c *gin.Context) {
	var totalProducts, totalOrders, pendingOrders, totalCustomers int64

	if err := ctl.DB.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		databaseError(c, "Failed to count products")
		return
	}
	if err := ctl.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		databaseError(c, "Failed to count orders")
		return
	}
	if err := ctl.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pendingOrders).Error; err != nil {
		databaseError(c, "Failed to count pending orders")
		return
	}
	if err := ctl.DB.Model(&models.Order{}).Distinct("phone").Count(&totalCustomers).Error; err != nil {
		databaseError(c, "Failed to count customers")
		return
	}

	// Revenue excludes cancelled orders
	var totalRevenue float64
	err := ctl.DB.Model(&models.Order{}).
		Where("status <> ?", models.StatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		databaseError(c, "Failed to compute revenue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_products":  totalProducts,
			"total_orders":    totalOrders,
			"pending_orders":  pendingOrders,
			"total_customers": totalCustomers,
			"total_revenue":   totalRevenue,
		},
	})
}
