package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/utils"
)

// ReservationItem is one line of a stock reservation request.
type ReservationItem struct {
	ProductID string
	Quantity  int
}

// InventoryService owns all stock movements. Reservations decrement stock at
// order creation; releases restore it on cancellation. Every movement is a
// single conditional UPDATE so concurrent orders cannot oversell.
type InventoryService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewInventoryService creates an inventory service over the given handle.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db, log: utils.Logger()}
}

// Reserve validates the entire batch first (existence and sufficient stock),
// then applies one conditional atomic decrement per product
// (quantity = quantity - n only while quantity >= n). If a decrement loses a
// concurrent race after validation passed, the decrements already applied by
// this call are rolled back and InsufficientStockError is returned, so a
// failed submission never leaves partial reservations behind.
func (s *InventoryService) Reserve(items []ReservationItem) error {
	// Validate the whole batch before touching any stock.
	for _, item := range items {
		var product models.Product
		if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}
			return fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
		}
		if product.Quantity < item.Quantity {
			return &InsufficientStockError{ProductID: product.ID, NameEN: product.NameEN}
		}
	}

	for i, item := range items {
		res := s.db.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", item.ProductID, item.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
		if res.Error != nil {
			s.Release(items[:i])
			return fmt.Errorf("failed to reserve stock for %s: %w", item.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent order drained this product between validation
			// and decrement. Undo what this call already took.
			s.Release(items[:i])
			return s.insufficientFor(item.ProductID)
		}
	}
	return nil
}

// Release restores stock for the given items with unconditional positive
// deltas. Callers must guarantee at-most-once invocation per cancellation;
// the confirmation state machine does this with its compare-and-swap guard.
//
// A failed restock is inventory drift, so every failure is logged here with
// the product and delta, and the aggregated error is returned for the caller
// to act on. Failures do not stop the loop; the remaining items still get
// their stock back.
func (s *InventoryService) Release(items []ReservationItem) error {
	var errs []error
	for _, item := range items {
		err := s.db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
		if err != nil {
			s.log.Error("Failed to restock product",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("failed to restock %s (+%d): %w", item.ProductID, item.Quantity, err))
		}
	}
	return errors.Join(errs...)
}

// ReservationItemsFromOrder maps persisted order lines back to reservation
// items for release on cancellation.
func ReservationItemsFromOrder(order *models.Order) []ReservationItem {
	items := make([]ReservationItem, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, ReservationItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return items
}

func (s *InventoryService) insufficientFor(productID string) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		return &InsufficientStockError{ProductID: productID, NameEN: "product"}
	}
	return &InsufficientStockError{ProductID: product.ID, NameEN: product.NameEN}
}
