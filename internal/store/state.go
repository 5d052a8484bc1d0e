package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rjcarver/manna/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// State keys tracked for session resume.
const (
	stateLastBook       = "last_book"
	stateLastChapter    = "last_chapter"
	stateLastStartVerse = "last_start_verse"
	stateLastEndVerse   = "last_end_verse"
	statePreview        = "preview_message"
	stateVerseRef       = "current_verse_ref"
	stateRecipient      = "recipient_number"
)

// SetState upserts a state value.
func (s *Store) SetState(key, value string) error {
	if key == "" {
		return fmt.Errorf("store: state key is required")
	}

	entry := models.StateEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
	if result.Error != nil {
		return fmt.Errorf("store: set state %q: %w", key, result.Error)
	}
	return nil
}

// GetState returns the stored value for key, or def when the key has
// never been written.
func (s *Store) GetState(key, def string) (string, error) {
	var entry models.StateEntry
	err := s.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("store: get state %q: %w", key, err)
	}
	return entry.Value, nil
}

// VerseSelection is the last passage picked in the UI.
type VerseSelection struct {
	Book       string
	Chapter    int
	StartVerse int
	EndVerse   int
	Preview    string
	Reference  string
}

// SaveVerseSelection persists the last verse selection for session
// resume. Preview and reference are only written when non-empty.
func (s *Store) SaveVerseSelection(sel VerseSelection) error {
	pairs := []struct{ key, value string }{
		{stateLastBook, sel.Book},
		{stateLastChapter, strconv.Itoa(sel.Chapter)},
		{stateLastStartVerse, strconv.Itoa(sel.StartVerse)},
		{stateLastEndVerse, strconv.Itoa(sel.EndVerse)},
	}
	for _, p := range pairs {
		if err := s.SetState(p.key, p.value); err != nil {
			return err
		}
	}
	if sel.Preview != "" {
		if err := s.SetState(statePreview, sel.Preview); err != nil {
			return err
		}
	}
	if sel.Reference != "" {
		if err := s.SetState(stateVerseRef, sel.Reference); err != nil {
			return err
		}
	}
	return nil
}

// LastVerseSelection returns the saved selection, falling back to
// John 3:16 when nothing has been saved yet.
func (s *Store) LastVerseSelection() (VerseSelection, error) {
	sel := VerseSelection{}
	var err error

	if sel.Book, err = s.GetState(stateLastBook, "John"); err != nil {
		return sel, err
	}
	if sel.Chapter, err = s.intState(stateLastChapter, 3); err != nil {
		return sel, err
	}
	if sel.StartVerse, err = s.intState(stateLastStartVerse, 16); err != nil {
		return sel, err
	}
	if sel.EndVerse, err = s.intState(stateLastEndVerse, 16); err != nil {
		return sel, err
	}
	if sel.Preview, err = s.GetState(statePreview, ""); err != nil {
		return sel, err
	}
	if sel.Reference, err = s.GetState(stateVerseRef, ""); err != nil {
		return sel, err
	}
	return sel, nil
}

// SaveRecipient persists the default recipient phone number.
func (s *Store) SaveRecipient(phone string) error {
	return s.SetState(stateRecipient, phone)
}

// Recipient returns the saved default recipient, empty if unset.
func (s *Store) Recipient() (string, error) {
	return s.GetState(stateRecipient, "")
}

// intState reads a numeric state value, tolerating unparseable values by
// returning the default.
func (s *Store) intState(key string, def int) (int, error) {
	raw, err := s.GetState(key, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return def, nil
	}
	return n, nil
}
