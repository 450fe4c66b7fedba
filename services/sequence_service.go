package services

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zaylux/zaylux-store-api/models"
)

const orderCounterName = "public_order_id"

// SequenceService issues monotonically increasing public order identifiers.
// Allocation is a single UPDATE ... RETURNING against one counter row, so two
// concurrent calls can never observe the same value.
type SequenceService struct {
	db     *gorm.DB
	prefix string
	start  int64
}

// NewSequenceService creates a sequence service. prefix is prepended to every
// issued id; start is the first value ever issued (e.g. 100001).
func NewSequenceService(db *gorm.DB, prefix string, start int64) *SequenceService {
	return &SequenceService{db: db, prefix: prefix, start: start}
}

// NextPublicID atomically increments the counter and returns the formatted
// public order id. If the counter store is unavailable an error is returned
// and the caller must abort order creation before reserving any stock.
func (s *SequenceService) NextPublicID() (string, error) {
	next, err := s.increment()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", s.prefix, next), nil
}

func (s *SequenceService) increment() (int64, error) {
	var next int64

	res := s.db.Raw(
		`UPDATE sequence_counters SET value = value + 1 WHERE name = ? RETURNING value`,
		orderCounterName,
	).Scan(&next)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance order sequence: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return next, nil
	}

	// First allocation ever: seed the counter at start-1 so the increment
	// below hands out exactly start. OnConflict absorbs a concurrent seeder.
	seed := models.SequenceCounter{Name: orderCounterName, Value: s.start - 1}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, fmt.Errorf("failed to seed order sequence: %w", err)
	}

	res = s.db.Raw(
		`UPDATE sequence_counters SET value = value + 1 WHERE name = ? RETURNING value`,
		orderCounterName,
	).Scan(&next)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance order sequence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("order sequence counter missing after seed")
	}
	return next, nil
}
