package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zaylux/zaylux-store-api/services"
)

// ValidateCouponRequest represents the request body for coupon validation
type ValidateCouponRequest struct {
	Code       string  `json:"code" binding:"required"`
	OrderTotal float64 `json:"order_total"`
}

// CouponController handles the public coupon endpoint
type CouponController struct {
	Coupons *services.CouponService
}

// NewCouponController creates a coupon controller
func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{Coupons: coupons}
}

// ValidateCoupon handles POST /api/coupons/validate - checks a code against
// an order total and returns the computed discount. Invalid codes are a 200
// with valid=false, matching the checkout flow's expectations.
func (ctl *CouponController) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Coupon code is required",
			},
		})
		return
	}

	result, err := ctl.Coupons.Validate(req.Code, req.OrderTotal)
	if err != nil {
		databaseError(c, "Failed to validate coupon")
		return
	}

	c.JSON(http.StatusOK, result)
}
