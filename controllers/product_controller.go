package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// ProductController handles the public catalog endpoints
type ProductController struct {
	DB *gorm.DB
}

// NewProductController creates a product controller
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// ListProducts handles GET /api/products - returns all visible products
func (ctl *ProductController) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := ctl.DB.Where("is_visible = ?", true).Find(&products).Error; err != nil {
		databaseError(c, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// GetProduct handles GET /api/products/:id - returns a single visible product
func (ctl *ProductController) GetProduct(c *gin.Context) {
	var product models.Product
	err := ctl.DB.First(&product, "id = ? AND is_visible = ?", c.Param("id"), true).Error
	if err != nil {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}
