package services

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/utils"
)

// pendingScanLimit bounds how many pending orders a single inbound message
// scans. Fuzzy phone matching is a linear scan; at a larger scale this wants
// a secondary index keyed by the normalized digits.
const pendingScanLimit = 200

// ConfirmationService owns the order confirmation lifecycle: it matches
// inbound WhatsApp replies to pending orders, applies the
// pending -> confirmed|cancelled transition, and triggers inventory and
// notification side effects.
type ConfirmationService struct {
	db        *gorm.DB
	inventory *InventoryService
	whatsapp  WhatsAppSender
	log       *zap.Logger
}

// NewConfirmationService wires the state machine to its collaborators.
func NewConfirmationService(db *gorm.DB, inventory *InventoryService, whatsapp WhatsAppSender) *ConfirmationService {
	return &ConfirmationService{
		db:        db,
		inventory: inventory,
		whatsapp:  whatsapp,
		log:       utils.Logger(),
	}
}

// HandleIncomingMessage processes one inbound webhook message. from is the
// raw sender identifier ("whatsapp:+9665..."); body is the free-text reply.
//
// Messages that match no pending order, or whose intent is unclear, change no
// state; a guidance message goes back instead. Once an order has left
// pending it is excluded from the scan, so replayed or duplicate messages
// are naturally inert.
func (s *ConfirmationService) HandleIncomingMessage(from, body string) error {
	phone := strings.TrimPrefix(from, "whatsapp:")
	key := NormalizePhone(phone)
	intent := ClassifyReply(body)

	s.log.Info("Inbound WhatsApp message",
		zap.String("phone_key", key),
		zap.String("intent", intent.String()),
	)

	order, err := s.findPendingOrder(key)
	if err != nil {
		return err
	}
	if order == nil {
		s.sendGuidance(phone, "")
		return nil
	}

	if intent == IntentUnknown {
		s.sendGuidance(phone, order.PublicOrderID)
		return nil
	}

	if intent == IntentConfirm {
		return s.confirm(order, phone)
	}
	return s.cancel(order, phone)
}

// CancelGuarded cancels an order through the same compare-and-swap guard the
// webhook path uses, restocking only when this call actually won the
// transition. Admin-triggered cancellations go through here so a cancel can
// never double-restock.
func (s *ConfirmationService) CancelGuarded(order *models.Order) (bool, error) {
	won, err := s.transition(order.ID, models.ConfirmationCancelled, models.StatusCancelled)
	if err != nil {
		return false, err
	}
	if won {
		// The order is cancelled either way; a failed restock is inventory
		// drift and must be visible for manual correction.
		if err := s.inventory.Release(ReservationItemsFromOrder(order)); err != nil {
			s.log.Error("Order cancelled but restock failed",
				zap.String("order_id", order.ID),
				zap.String("public_order_id", order.PublicOrderID),
				zap.Error(err),
			)
		}
	}
	return won, nil
}

// findPendingOrder scans pending orders most-recent-first and returns the
// first whose stored phone normalizes to the same canonical key. A customer
// can have several historical orders under the same key; only the newest
// undecided one is actionable.
func (s *ConfirmationService) findPendingOrder(key string) (*models.Order, error) {
	var pending []models.Order
	err := s.db.Preload("Items").
		Where("confirmation_status = ?", models.ConfirmationPending).
		Order("created_at DESC").
		Limit(pendingScanLimit).
		Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending orders: %w", err)
	}

	for i := range pending {
		if NormalizePhone(pending[i].Phone) == key {
			return &pending[i], nil
		}
	}
	return nil, nil
}

func (s *ConfirmationService) confirm(order *models.Order, phone string) error {
	won, err := s.transition(order.ID, models.ConfirmationConfirmed, models.StatusConfirmed)
	if err != nil {
		return err
	}
	if !won {
		// Already resolved by a concurrent message; nothing to do.
		return nil
	}

	s.log.Info("Order confirmed",
		zap.String("order_id", order.ID),
		zap.String("public_order_id", order.PublicOrderID),
	)

	if res := s.whatsapp.SendStatusMessage(phone, order.PublicOrderID, models.ConfirmationConfirmed, "en"); !res.Success {
		s.log.Warn("Failed to send confirmation message",
			zap.String("public_order_id", order.PublicOrderID),
			zap.String("error", res.Error),
		)
	}
	return nil
}

func (s *ConfirmationService) cancel(order *models.Order, phone string) error {
	won, err := s.CancelGuarded(order)
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	s.log.Info("Order cancelled",
		zap.String("order_id", order.ID),
		zap.String("public_order_id", order.PublicOrderID),
	)

	if res := s.whatsapp.SendStatusMessage(phone, order.PublicOrderID, models.ConfirmationCancelled, "en"); !res.Success {
		s.log.Warn("Failed to send cancellation message",
			zap.String("public_order_id", order.PublicOrderID),
			zap.String("error", res.Error),
		)
	}
	return nil
}

// transition applies the state change as a single conditional update: it only
// succeeds while the order is still pending. Returns whether this call won
// the transition.
func (s *ConfirmationService) transition(orderID, confirmationStatus, status string) (bool, error) {
	res := s.db.Model(&models.Order{}).
		Where("id = ? AND confirmation_status = ?", orderID, models.ConfirmationPending).
		Updates(map[string]interface{}{
			"confirmation_status": confirmationStatus,
			"status":              status,
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to transition order %s: %w", orderID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *ConfirmationService) sendGuidance(phone, publicOrderID string) {
	if res := s.whatsapp.SendGuidance(phone, publicOrderID); !res.Success {
		s.log.Warn("Failed to send guidance message",
			zap.String("phone", phone),
			zap.String("error", res.Error),
		)
	}
}
