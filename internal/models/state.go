package models

import "time"

// StateEntry is a key/value row used to resume UI selections across
// restarts. At most one row exists per key; writes are upserts.
type StateEntry struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Key       string `gorm:"size:64;not null;uniqueIndex"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
