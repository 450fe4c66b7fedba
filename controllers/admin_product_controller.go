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

// ProductCreateRequest represents the request body for creating a product
type ProductCreateRequest struct {
	NameEN        string                 `json:"name_en" binding:"required"`
	NameAR        string                 `json:"name_ar" binding:"required"`
	DescriptionEN string                 `json:"description_en"`
	DescriptionAR string                 `json:"description_ar"`
	Category      string                 `json:"category" binding:"required"`
	Price         float64                `json:"price" binding:"required,gt=0"`
	OriginalPrice *float64               `json:"original_price"`
	Quantity      int                    `json:"quantity" binding:"gte=0"`
	Images        []string               `json:"images"`
	IsVisible     *bool                  `json:"is_visible"`
	Specs         map[string]interface{} `json:"specs"`
}

// ProductUpdateRequest represents a partial product update; nil fields are
// left untouched
type ProductUpdateRequest struct {
	NameEN        *string                `json:"name_en"`
	NameAR        *string                `json:"name_ar"`
	DescriptionEN *string                `json:"description_en"`
	DescriptionAR *string                `json:"description_ar"`
	Category      *string                `json:"category"`
	Price         *float64               `json:"price"`
	OriginalPrice *float64               `json:"original_price"`
	Quantity      *int                   `json:"quantity"`
	Images        []string               `json:"images"`
	IsVisible     *bool                  `json:"is_visible"`
	Specs         map[string]interface{} `json:"specs"`
}

// AdminProductController handles product management for admins
type AdminProductController struct {
	DB *gorm.DB
}

// NewAdminProductController creates an admin product controller
func NewAdminProductController(db *gorm.DB) *AdminProductController {
	return &AdminProductController{DB: db}
}

// ListProducts handles GET /admin/products - all products, hidden included
func (ctl *AdminProductController) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := ctl.DB.Find(&products).Error; err != nil {
		databaseError(c, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// CreateProduct handles POST /admin/products
func (ctl *AdminProductController) CreateProduct(c *gin.Context) {
	var req ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product data",
				"details": err.Error(),
			},
		})
		return
	}

	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}

	product := models.Product{
		ID:            uuid.NewString(),
		NameEN:        req.NameEN,
		NameAR:        req.NameAR,
		DescriptionEN: req.DescriptionEN,
		DescriptionAR: req.DescriptionAR,
		Category:      req.Category,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Quantity:      req.Quantity,
		Images:        req.Images,
		IsVisible:     isVisible,
		Specs:         req.Specs,
	}
	if err := ctl.DB.Create(&product).Error; err != nil {
		databaseError(c, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// UpdateProduct handles PUT /admin/products/:id - partial update
func (ctl *AdminProductController) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var product models.Product
	if err := ctl.DB.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			productNotFound(c)
			return
		}
		databaseError(c, "Failed to load product")
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product data",
			},
		})
		return
	}

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if req.NameEN != nil {
		updates["name_en"] = *req.NameEN
	}
	if req.NameAR != nil {
		updates["name_ar"] = *req.NameAR
	}
	if req.DescriptionEN != nil {
		updates["description_en"] = *req.DescriptionEN
	}
	if req.DescriptionAR != nil {
		updates["description_ar"] = *req.DescriptionAR
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}

	if err := ctl.DB.Model(&product).Updates(updates).Error; err != nil {
		databaseError(c, "Failed to update product")
		return
	}

	// Serialized fields go through Model updates so the JSON encoding runs
	if req.Images != nil {
		if err := ctl.DB.Model(&product).Update("images", req.Images).Error; err != nil {
			databaseError(c, "Failed to update product images")
			return
		}
	}
	if req.Specs != nil {
		if err := ctl.DB.Model(&product).Update("specs", req.Specs).Error; err != nil {
			databaseError(c, "Failed to update product specs")
			return
		}
	}

	var updated models.Product
	if err := ctl.DB.First(&updated, "id = ?", productID).Error; err != nil {
		databaseError(c, "Failed to load updated product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteProduct handles DELETE /admin/products/:id
func (ctl *AdminProductController) DeleteProduct(c *gin.Context) {
	res := ctl.DB.Delete(&models.Product{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		databaseError(c, "Failed to delete product")
		return
	}
	if res.RowsAffected == 0 {
		productNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

func productNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "PRODUCT_NOT_FOUND",
			"message": "Product not found",
		},
	})
}
