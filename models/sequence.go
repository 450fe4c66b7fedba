package models

// SequenceCounter holds the last-issued value of a named monotonic sequence.
// It is only ever mutated through a single-statement atomic increment.
type SequenceCounter struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName specifies the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}

// AllModels lists every model for auto-migration at startup.
func AllModels() []interface{} {
	return []interface{}{
		&Product{},
		&Order{},
		&OrderItem{},
		&Coupon{},
		&BlockedCustomer{},
		&NotifyRequest{},
		&Admin{},
		&SequenceCounter{},
	}
}
