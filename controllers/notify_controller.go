package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// NotifyRequestBody represents the request body for a notify-me request
type NotifyRequestBody struct {
	ProductID string  `json:"product_id" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Name      *string `json:"name"`
}

// NotifyController handles back-in-stock notification requests
type NotifyController struct {
	DB *gorm.DB
}

// NewNotifyController creates a notify controller
func NewNotifyController(db *gorm.DB) *NotifyController {
	return &NotifyController{DB: db}
}

// CreateNotifyRequest handles POST /api/notify-me - registers interest in an
// out-of-stock product. Duplicate (product, phone) pairs are rejected.
func (ctl *NotifyController) CreateNotifyRequest(c *gin.Context) {
	var req NotifyRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Product id and phone are required",
			},
		})
		return
	}

	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		databaseError(c, "Failed to load product")
		return
	}

	if product.Quantity > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_IN_STOCK",
				"message": "Product is in stock",
			},
		})
		return
	}

	var existing models.NotifyRequest
	err := ctl.DB.First(&existing, "product_id = ? AND phone = ?", req.ProductID, req.Phone).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DUPLICATE_REQUEST",
				"message": "You have already requested notification for this product",
			},
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		databaseError(c, "Failed to check existing requests")
		return
	}

	notify := models.NotifyRequest{
		ID:        uuid.NewString(),
		ProductID: req.ProductID,
		Phone:     req.Phone,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := ctl.DB.Create(&notify).Error; err != nil {
		databaseError(c, "Failed to create notify request")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    notify,
	})
}
