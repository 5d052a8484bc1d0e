package store

import (
	"fmt"

	"github.com/rjcarver/manna/internal/models"
)

// EnqueueSchedule validates and inserts a scheduled passage. Defaults:
// kind delivery, recurrence once, status pending.
func (s *Store) EnqueueSchedule(p models.ScheduledPassage) (*models.ScheduledPassage, error) {
	if p.Kind == "" {
		p.Kind = string(models.KindDelivery)
	}
	if p.Recurrence == "" {
		p.Recurrence = string(models.RecurOnce)
	}
	if p.Status == "" {
		p.Status = string(models.StatusPending)
	}

	if !models.ScheduleKind(p.Kind).Valid() {
		return nil, fmt.Errorf("store: invalid schedule kind %q", p.Kind)
	}
	if !models.Recurrence(p.Recurrence).Valid() {
		return nil, fmt.Errorf("store: invalid recurrence %q", p.Recurrence)
	}
	if !models.ScheduleStatus(p.Status).Valid() {
		return nil, fmt.Errorf("store: invalid status %q", p.Status)
	}
	if p.Book == "" {
		return nil, fmt.Errorf("store: book is required")
	}
	if p.Kind == string(models.KindDelivery) {
		if !timeOfDayRE.MatchString(p.TimeOfDay) {
			return nil, fmt.Errorf("store: time of day %q is not zero-padded HH:MM", p.TimeOfDay)
		}
		if p.Recipient == "" {
			return nil, fmt.Errorf("store: recipient is required for deliveries")
		}
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("store: enqueue schedule: %w", err)
	}
	return &p, nil
}

// PendingSchedules returns undelivered passages ordered by time of day.
// The ordering is lexicographic, correct because EnqueueSchedule only
// accepts zero-padded HH:MM values.
func (s *Store) PendingSchedules() ([]models.ScheduledPassage, error) {
	var rows []models.ScheduledPassage
	if err := s.db.Where("kind = ? AND status = ?",
		string(models.KindDelivery), string(models.StatusPending)).
		Order("time_of_day").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: pending schedules: %w", err)
	}
	return rows, nil
}

// DuePassages returns pending deliveries due at the given "HH:MM"
// reading. Daily rows already delivered on today (a "YYYY-MM-DD" date in
// the scheduler's timezone) are excluded.
func (s *Store) DuePassages(hhmm, today string) ([]models.ScheduledPassage, error) {
	var rows []models.ScheduledPassage
	if err := s.db.Where(
		"kind = ? AND status = ? AND time_of_day = ? AND last_sent_on <> ?",
		string(models.KindDelivery), string(models.StatusPending), hhmm, today).
		Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: due passages: %w", err)
	}
	return rows, nil
}

// MarkSent flips a one-shot schedule to sent. Idempotent: marking an
// already-sent or missing row is a no-op.
func (s *Store) MarkSent(id uint) error {
	if err := s.db.Model(&models.ScheduledPassage{}).
		Where("id = ?", id).
		Update("status", string(models.StatusSent)).Error; err != nil {
		return fmt.Errorf("store: mark sent %d: %w", id, err)
	}
	return nil
}

// MarkDelivered records the delivery date on a daily schedule so it is
// not re-sent within the same day. The row stays pending for the next
// calendar day.
func (s *Store) MarkDelivered(id uint, date string) error {
	if err := s.db.Model(&models.ScheduledPassage{}).
		Where("id = ?", id).
		Update("last_sent_on", date).Error; err != nil {
		return fmt.Errorf("store: mark delivered %d: %w", id, err)
	}
	return nil
}

// DeleteSchedule removes a schedule. Deleting a missing id is a no-op.
func (s *Store) DeleteSchedule(id uint) error {
	if err := s.db.Delete(&models.ScheduledPassage{}, id).Error; err != nil {
		return fmt.Errorf("store: delete schedule %d: %w", id, err)
	}
	return nil
}

// ReadingPlan returns plan-kind rows in insertion order.
func (s *Store) ReadingPlan() ([]models.ScheduledPassage, error) {
	var rows []models.ScheduledPassage
	if err := s.db.Where("kind = ?", string(models.KindPlan)).
		Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: reading plan: %w", err)
	}
	return rows, nil
}

// AddPlanItem bookmarks a passage in the reading plan. Plan rows carry
// no recipient or time of day and are never picked up by the scheduler.
func (s *Store) AddPlanItem(book string, chapter, startVerse, endVerse int, includeReflection bool) (*models.ScheduledPassage, error) {
	return s.EnqueueSchedule(models.ScheduledPassage{
		Kind:              string(models.KindPlan),
		Book:              book,
		Chapter:           chapter,
		StartVerse:        startVerse,
		EndVerse:          endVerse,
		IncludeReflection: includeReflection,
	})
}
