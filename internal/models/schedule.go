package models

import "time"

// ScheduleKind distinguishes deliverable schedules from reading-plan
// bookmarks. Plan items keep a schedule row but are never considered due.
type ScheduleKind string

const (
	KindDelivery ScheduleKind = "delivery"
	KindPlan     ScheduleKind = "plan"
)

// Valid reports whether k is one of the closed set of kinds.
func (k ScheduleKind) Valid() bool {
	return k == KindDelivery || k == KindPlan
}

// ScheduleStatus is the delivery state of a one-shot schedule.
type ScheduleStatus string

const (
	StatusPending ScheduleStatus = "pending"
	StatusSent    ScheduleStatus = "sent"
)

// Valid reports whether s is one of the closed set of statuses.
func (s ScheduleStatus) Valid() bool {
	return s == StatusPending || s == StatusSent
}

// Recurrence controls whether a schedule fires once or every day.
type Recurrence string

const (
	RecurOnce  Recurrence = "once"
	RecurDaily Recurrence = "daily"
)

// Valid reports whether r is one of the closed set of recurrences.
func (r Recurrence) Valid() bool {
	return r == RecurOnce || r == RecurDaily
}

// ScheduledPassage is a delivery intent (or reading-plan bookmark) for a
// Bible passage. One-shot rows transition pending -> sent exactly once;
// daily rows stay pending and record LastSentOn to avoid same-day repeats.
type ScheduledPassage struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	Kind              string `gorm:"size:16;not null;default:delivery;index"` // "delivery" or "plan"
	Book              string `gorm:"size:32;not null"`
	Chapter           int    `gorm:"not null"`
	StartVerse        int    `gorm:"not null"`
	EndVerse          int    `gorm:"not null"`
	TimeOfDay         string `gorm:"size:8;not null"` // zero-padded "HH:MM"
	IncludeReflection bool
	Recipient         string `gorm:"size:64"`
	Recurrence        string `gorm:"size:16;not null;default:once"`
	Status            string `gorm:"size:16;not null;default:pending;index"`
	LastSentOn        string `gorm:"size:10"` // "YYYY-MM-DD" in the scheduler's timezone
	CreatedAt         time.Time
}
