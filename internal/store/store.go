// Package store provides durable CRUD for messages, scheduled passages
// and UI state. Enum-typed fields are validated here so invalid values
// cannot be persisted.
package store

import (
	"fmt"
	"regexp"

	"github.com/rjcarver/manna/internal/models"
	"gorm.io/gorm"
)

// DefaultWindowSize is the default conversation window, roughly three
// exchanges.
const DefaultWindowSize = 6

// timeOfDayRE matches zero-padded 24-hour "HH:MM" strings. Pending
// schedules are ordered lexicographically by time of day, which is only
// correct for this fixed-width format, so it is enforced on write.
var timeOfDayRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Store wraps a GORM connection with the operations the scheduler,
// webhook and CLI need. Build one at process start and pass it down.
type Store struct {
	db *gorm.DB
}

// New creates a Store.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is required")
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying connection for the webhook API handlers.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// RecordMessage appends a message to the conversation log. Messages are
// immutable once written.
func (s *Store) RecordMessage(phone string, direction models.Direction, body, providerID string) error {
	if phone == "" {
		return fmt.Errorf("store: phone is required")
	}
	if !direction.Valid() {
		return fmt.Errorf("store: invalid direction %q", direction)
	}

	msg := models.Message{
		PhoneNumber: phone,
		Direction:   string(direction),
		Body:        body,
		ProviderID:  providerID,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return fmt.Errorf("store: record message: %w", err)
	}
	return nil
}

// History returns the last limit messages for a phone number in
// chronological order. The limit bounds row count, not time range.
func (s *Store) History(phone string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = DefaultWindowSize
	}

	var msgs []models.Message
	if err := s.db.Where("phone_number = ?", phone).
		Order("id DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("store: history %s: %w", phone, err)
	}

	// Newest-first from the query; reverse into chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
