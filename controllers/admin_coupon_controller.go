package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// CouponCreateRequest represents the request body for creating or updating a
// coupon
type CouponCreateRequest struct {
	Code               string     `json:"code" binding:"required"`
	DiscountPercentage float64    `json:"discount_percentage" binding:"required,gt=0,lte=100"`
	ExpiryDate         *time.Time `json:"expiry_date"`
	MinOrderValue      *float64   `json:"min_order_value"`
	IsActive           *bool      `json:"is_active"`
}

// AdminCouponController handles coupon management for admins
type AdminCouponController struct {
	DB *gorm.DB
}

// NewAdminCouponController creates an admin coupon controller
func NewAdminCouponController(db *gorm.DB) *AdminCouponController {
	return &AdminCouponController{DB: db}
}

// ListCoupons handles GET /admin/coupons
func (ctl *AdminCouponController) ListCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := ctl.DB.Find(&coupons).Error; err != nil {
		databaseError(c, "Failed to load coupons")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": coupons})
}

// CreateCoupon handles POST /admin/coupons - codes are stored upper-cased
// and must be unique
func (ctl *AdminCouponController) CreateCoupon(c *gin.Context) {
	var req CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid coupon data",
				"details": err.Error(),
			},
		})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var existing models.Coupon
	err := ctl.DB.First(&existing, "code = ?", code).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COUPON_EXISTS",
				"message": "Coupon code already exists",
			},
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		databaseError(c, "Failed to check existing coupons")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := models.Coupon{
		ID:                 uuid.NewString(),
		Code:               code,
		DiscountPercentage: req.DiscountPercentage,
		ExpiryDate:         req.ExpiryDate,
		MinOrderValue:      req.MinOrderValue,
		IsActive:           isActive,
		CreatedAt:          time.Now().UTC(),
	}
	if err := ctl.DB.Create(&coupon).Error; err != nil {
		databaseError(c, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": coupon})
}

// UpdateCoupon handles PUT /admin/coupons/:id - full replacement of the
// editable fields
func (ctl *AdminCouponController) UpdateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := ctl.DB.First(&coupon, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			couponNotFound(c)
			return
		}
		databaseError(c, "Failed to load coupon")
		return
	}

	var req CouponCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid coupon data",
			},
		})
		return
	}

	isActive := coupon.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	updates := map[string]interface{}{
		"code":                strings.ToUpper(strings.TrimSpace(req.Code)),
		"discount_percentage": req.DiscountPercentage,
		"expiry_date":         req.ExpiryDate,
		"min_order_value":     req.MinOrderValue,
		"is_active":           isActive,
	}
	if err := ctl.DB.Model(&coupon).Updates(updates).Error; err != nil {
		databaseError(c, "Failed to update coupon")
		return
	}

	var updated models.Coupon
	if err := ctl.DB.First(&updated, "id = ?", c.Param("id")).Error; err != nil {
		databaseError(c, "Failed to load updated coupon")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteCoupon handles DELETE /admin/coupons/:id
func (ctl *AdminCouponController) DeleteCoupon(c *gin.Context) {
	res := ctl.DB.Delete(&models.Coupon{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		databaseError(c, "Failed to delete coupon")
		return
	}
	if res.RowsAffected == 0 {
		couponNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Coupon deleted successfully"})
}

func couponNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "COUPON_NOT_FOUND",
			"message": "Coupon not found",
		},
	})
}
