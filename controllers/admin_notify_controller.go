package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// NotifyGroup is the per-product aggregation of notify-me requests
type NotifyGroup struct {
	ProductID     string                 `json:"product_id"`
	ProductNameEN string                 `json:"product_name_en"`
	ProductNameAR string                 `json:"product_name_ar"`
	Count         int                    `json:"count"`
	Requests      []models.NotifyRequest `json:"requests"`
}

// AdminNotifyController lists back-in-stock requests for admins
type AdminNotifyController struct {
	DB *gorm.DB
}

// NewAdminNotifyController creates an admin notify controller
func NewAdminNotifyController(db *gorm.DB) *AdminNotifyController {
	return &AdminNotifyController{DB: db}
}

// ListGrouped handles GET /admin/notify-requests - requests grouped by
// product with counts and product names
func (ctl *AdminNotifyController) ListGrouped(c *gin.Context) {
	var requests []models.NotifyRequest
	if err := ctl.DB.Order("created_at DESC").Find(&requests).Error; err != nil {
		databaseError(c, "Failed to load notify requests")
		return
	}

	byProduct := make(map[string][]models.NotifyRequest)
	order := make([]string, 0)
	for _, r := range requests {
		if _, seen := byProduct[r.ProductID]; !seen {
			order = append(order, r.ProductID)
		}
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}

	groups := make([]NotifyGroup, 0, len(order))
	for _, productID := range order {
		group := NotifyGroup{
			ProductID:     productID,
			ProductNameEN: "Unknown",
			ProductNameAR: "غير معروف",
			Count:         len(byProduct[productID]),
			Requests:      byProduct[productID],
		}
		var product models.Product
		if err := ctl.DB.Select("name_en", "name_ar").First(&product, "id = ?", productID).Error; err == nil {
			group.ProductNameEN = product.NameEN
			group.ProductNameAR = product.NameAR
		}
		groups = append(groups, group)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": groups})
}

// ListForProduct handles GET /admin/notify-requests/:productId
func (ctl *AdminNotifyController) ListForProduct(c *gin.Context) {
	var requests []models.NotifyRequest
	err := ctl.DB.Where("product_id = ?", c.Param("productId")).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		databaseError(c, "Failed to load notify requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": requests})
}
