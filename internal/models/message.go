// Package models defines the GORM entities persisted by manna.
package models

import "time"

// Direction tags a logged message as inbound or outbound.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// Valid reports whether d is one of the closed set of directions.
func (d Direction) Valid() bool {
	return d == Incoming || d == Outgoing
}

// Message is one logged SMS/WhatsApp exchange turn. Rows are append-only:
// there is no update path once written.
type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	PhoneNumber string    `gorm:"size:32;not null;index"`
	Direction   string    `gorm:"size:16;not null"` // "incoming" or "outgoing"
	Body        string    `gorm:"type:text;not null"`
	ProviderID  string    `gorm:"size:64"` // provider correlation id (e.g. Twilio SID)
	CreatedAt   time.Time `gorm:"index"`
}
