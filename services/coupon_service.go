package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

// CouponResult is the outcome of validating a coupon against an order total.
type CouponResult struct {
	Valid              bool    `json:"valid"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	Message            string  `json:"message"`
}

// CouponService validates coupon codes and tracks their usage.
type CouponService struct {
	db *gorm.DB
}

// NewCouponService creates a coupon service over the given handle.
func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// Validate checks a code against existence, active flag, expiry and minimum
// order value, in that order; the first failing check wins. A valid result
// computes the discount and increments the coupon's usage counter. The
// counter counts successful validations, not completed orders, so abandoned
// checkouts inflate it; preserved until product says otherwise.
func (s *CouponService) Validate(code string, orderTotal float64) (*CouponResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var coupon models.Coupon
	if err := s.db.First(&coupon, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CouponResult{Valid: false, Message: "Invalid coupon code"}, nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if !coupon.IsActive {
		return &CouponResult{Valid: false, Message: "This coupon is no longer active"}, nil
	}

	if coupon.ExpiryDate != nil && time.Now().After(*coupon.ExpiryDate) {
		return &CouponResult{Valid: false, Message: "This coupon has expired"}, nil
	}

	if coupon.MinOrderValue != nil && orderTotal < *coupon.MinOrderValue {
		return &CouponResult{
			Valid:   false,
			Message: fmt.Sprintf("Minimum order value is %g SAR", *coupon.MinOrderValue),
		}, nil
	}

	discountAmount := orderTotal * coupon.DiscountPercentage / 100

	if err := s.db.Model(&models.Coupon{}).
		Where("code = ?", normalized).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
		return nil, fmt.Errorf("failed to record coupon usage: %w", err)
	}

	return &CouponResult{
		Valid:              true,
		DiscountPercentage: coupon.DiscountPercentage,
		DiscountAmount:     discountAmount,
		Message:            "Coupon applied successfully",
	}, nil
}
